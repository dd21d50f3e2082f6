// service/services.go
package service

// Services aggregates the business layer for dependency injection.
type Services struct {
	Workspace  IWorkspaceService
	Preference IPreferenceService
}
