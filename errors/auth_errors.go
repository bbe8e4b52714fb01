// api/errors/auth_errors.go
package errors

import "errors"

// Authentication failures. Each maps to a stable user-visible message in the
// controllers; none of them is ever retried on the server side.
var (
	ErrMissingToken           = errors.New("no token provided")
	ErrMalformedToken         = errors.New("malformed token")
	ErrTokenExpired           = errors.New("token expired")
	ErrInvalidSignature       = errors.New("invalid token signature")
	ErrUserNotFoundOrInactive = errors.New("user not found or inactive")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)

// Authorization failures. Raised after a principal has been resolved.
var (
	ErrInsufficientRole  = errors.New("insufficient permissions")
	ErrNoOrganization    = errors.New("no organization assigned")
	ErrCrossOrganization = errors.New("cannot access resources from other organizations")
	ErrAccessDenied      = errors.New("access denied")
)
