package model

import "time"

// WorkspacePreference records a user's relationship with one workspace.
// At most one row per user carries IsPrimary=true; the write path clears the
// old primary and sets the new one inside a single transaction.
type WorkspacePreference struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex:idx_pref_user_workspace;index"`
	WorkspaceID string    `json:"workspace_id" gorm:"uniqueIndex:idx_pref_user_workspace"`
	IsEnabled   bool      `json:"is_enabled"`
	IsPrimary   bool      `json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
