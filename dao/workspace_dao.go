// dao/workspace_dao.go
package dao

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sapictureday/sail/audit"
	sail_errors "github.com/sapictureday/sail/errors"
	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
)

type WorkspaceDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewWorkspaceDAO(db *gorm.DB, auditService audit.Service) *WorkspaceDAO {
	return &WorkspaceDAO{DB: db, AuditService: auditService}
}

func (dao *WorkspaceDAO) CreateWorkspace(ctx context.Context, workspace model.Workspace, creatorID string) (string, error) {
	start := time.Now()
	if workspace.ID == "" {
		workspace.ID = uuid.New().String()
	}

	if err := dao.DB.WithContext(ctx).Create(&workspace).Error; err != nil {
		logger.Error("Failed to create workspace",
			zap.Error(err),
			zap.String("name", workspace.Name),
			zap.Duration("duration", time.Since(start)))
		return "", sail_errors.ErrDatabaseOperation
	}

	logger.Info("Workspace created successfully",
		zap.String("workspaceID", workspace.ID),
		zap.Duration("duration", time.Since(start)))

	dao.recordChange(ctx, audit.ActionWorkspaceCreated, creatorID, workspace)
	return workspace.ID, nil
}

func (dao *WorkspaceDAO) UpdateWorkspace(ctx context.Context, workspace model.Workspace, updaterID string) (*model.Workspace, error) {
	start := time.Now()

	result := dao.DB.WithContext(ctx).Model(&model.Workspace{}).
		Where("id = ?", workspace.ID).
		Updates(map[string]interface{}{
			"name":       workspace.Name,
			"sort_order": workspace.SortOrder,
			"is_active":  workspace.IsActive,
		})
	if result.Error != nil {
		logger.Error("Failed to update workspace",
			zap.Error(result.Error),
			zap.String("workspaceID", workspace.ID),
			zap.Duration("duration", time.Since(start)))
		return nil, sail_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return nil, sail_errors.ErrWorkspaceNotFound
	}

	updated, err := dao.GetWorkspace(ctx, workspace.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, sail_errors.ErrWorkspaceNotFound
	}

	logger.Info("Workspace updated successfully",
		zap.String("workspaceID", workspace.ID),
		zap.Duration("duration", time.Since(start)))

	dao.recordChange(ctx, audit.ActionWorkspaceUpdated, updaterID, *updated)
	return updated, nil
}

// DeleteWorkspace soft-deletes: the row stays but stops resolving.
func (dao *WorkspaceDAO) DeleteWorkspace(ctx context.Context, workspaceID, deleterID string) error {
	result := dao.DB.WithContext(ctx).Model(&model.Workspace{}).
		Where("id = ?", workspaceID).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to delete workspace",
			zap.Error(result.Error),
			zap.String("workspaceID", workspaceID))
		return sail_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return sail_errors.ErrWorkspaceNotFound
	}

	dao.recordChange(ctx, audit.ActionWorkspaceDeleted, deleterID, model.Workspace{ID: workspaceID})
	return nil
}

// GetWorkspace returns nil without error when the workspace does not exist;
// callers that need a not-found error map it themselves.
func (dao *WorkspaceDAO) GetWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	var workspace model.Workspace
	err := dao.DB.WithContext(ctx).Take(&workspace, "id = ?", workspaceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, sail_errors.ErrDatabaseOperation
	}
	return &workspace, nil
}

func (dao *WorkspaceDAO) ListActiveWorkspaces(ctx context.Context) ([]*model.Workspace, error) {
	var workspaces []*model.Workspace
	err := dao.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&workspaces).Error
	if err != nil {
		return nil, sail_errors.ErrDatabaseOperation
	}
	return workspaces, nil
}

func (dao *WorkspaceDAO) ListWorkspaces(ctx context.Context, limit, offset int) ([]*model.Workspace, error) {
	var workspaces []*model.Workspace
	err := dao.DB.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&workspaces).Error
	if err != nil {
		return nil, sail_errors.ErrDatabaseOperation
	}
	return workspaces, nil
}

func (dao *WorkspaceDAO) recordChange(ctx context.Context, action, actorID string, workspace model.Workspace) {
	if dao.AuditService == nil {
		return
	}
	details, _ := json.Marshal(workspace)
	entry := audit.AuditLog{
		Timestamp:     time.Now(),
		UserID:        actorID,
		Action:        action,
		ResourceID:    workspace.ID,
		AccessGranted: true,
		ChangeDetails: details,
	}
	if err := dao.AuditService.LogAction(ctx, entry); err != nil {
		logger.Warn("Failed to write workspace audit entry",
			zap.Error(err),
			zap.String("action", action),
			zap.String("workspaceID", workspace.ID))
	}
}
