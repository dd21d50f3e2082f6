// errors/auth_errors.go
package errors

import "errors"

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrSessionNotFound       = errors.New("session not found")
	ErrAdminCheckUnavailable = errors.New("admin role check unavailable")
	ErrInvalidSignature      = errors.New("invalid webhook signature")
)
