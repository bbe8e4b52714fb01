// api/errors/user_errors.go
package errors

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidUserData = errors.New("invalid user data")
	ErrInvalidPassword = errors.New("password must be at least 8 characters")
	ErrUserConflict    = errors.New("user conflict")
)
