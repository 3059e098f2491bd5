package usecase

import "errors"

var (
	// ErrUserNotFound is returned by repositories when no user has the requested email.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned by repositories when the unique email index rejects an insert.
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// User-facing messages. Login failures share one message so callers cannot tell
// a missing account from a wrong password.
const (
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgLoginFieldsMissing = "Email and password are required"
	MsgRegistrationFailed = "Registration failed"
	MsgLoginFailed        = "Login failed"
)
