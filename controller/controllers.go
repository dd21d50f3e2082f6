// controller/controllers.go
package controller

// Controllers aggregates the HTTP layer for dependency injection.
type Controllers struct {
	Auth       *AuthController
	Page       *PageController
	Workspace  *WorkspaceController
	Preference *PreferenceController
	Webhook    *WebhookController
}
