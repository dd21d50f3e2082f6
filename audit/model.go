// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Actions recorded by the audit trail.
const (
	ActionWorkspaceCreated  = "WORKSPACE_CREATED"
	ActionWorkspaceUpdated  = "WORKSPACE_UPDATED"
	ActionWorkspaceDeleted  = "WORKSPACE_DELETED"
	ActionAdminCheckFailed  = "ADMIN_CHECK_FAILED"
	ActionAdminAccessDenied = "ADMIN_ACCESS_DENIED"
	ActionWebhookReceived   = "WEBHOOK_RECEIVED"
	ActionWebhookRejected   = "WEBHOOK_REJECTED"
)

type AuditLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	Action        string          `json:"action"`
	ResourceID    string          `json:"resource_id"`
	AccessGranted bool            `json:"access_granted"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
