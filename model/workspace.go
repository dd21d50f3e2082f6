package model

import "time"

// Workspace is a candidate personalization target. Inactive workspaces are
// soft-deleted: they stay in the table but never resolve.
type Workspace struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order" gorm:"index"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
