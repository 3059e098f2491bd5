// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /api/auth/register endpoint.
// Only presence of email and password is checked, by the usecase.
type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// RegisterResp is returned with 201 after a successful registration.
type RegisterResp struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
