package dto

// LoginReq は/api/auth/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResp はログイン成功時のレスポンスです。パスワードハッシュは含みません。
type LoginResp struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}
