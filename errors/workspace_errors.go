// errors/workspace_errors.go
package errors

import "errors"

var (
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrWorkspaceConflict    = errors.New("workspace conflict")
	ErrInvalidWorkspaceData = errors.New("invalid workspace data")
	ErrDatabaseOperation    = errors.New("database operation failed")
	ErrInternalServer       = errors.New("internal server error")
	ErrInvalidPagination    = errors.New("invalid pagination parameters")
)
