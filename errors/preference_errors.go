// errors/preference_errors.go
package errors

import "errors"

var (
	ErrPreferenceNotFound    = errors.New("preference not found")
	ErrInvalidPreferenceData = errors.New("invalid preference data")

	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidUserData = errors.New("invalid user data")
)
