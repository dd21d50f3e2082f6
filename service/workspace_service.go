// service/workspace_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
	"github.com/sapictureday/sail/util"
)

// IWorkspaceService defines the interface for workspace operations
type IWorkspaceService interface {
	CreateWorkspace(ctx context.Context, workspace model.Workspace, creatorID string) (*model.Workspace, error)
	UpdateWorkspace(ctx context.Context, workspace model.Workspace, updaterID string) (*model.Workspace, error)
	DeleteWorkspace(ctx context.Context, workspaceID string, deleterID string) error
	GetWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error)
	ListWorkspaces(ctx context.Context, limit, offset int) ([]*model.Workspace, error)
}

// WorkspaceStore is the DAO surface the service needs.
type WorkspaceStore interface {
	CreateWorkspace(ctx context.Context, workspace model.Workspace, creatorID string) (string, error)
	UpdateWorkspace(ctx context.Context, workspace model.Workspace, updaterID string) (*model.Workspace, error)
	DeleteWorkspace(ctx context.Context, workspaceID, deleterID string) error
	GetWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error)
	ListWorkspaces(ctx context.Context, limit, offset int) ([]*model.Workspace, error)
}

// ResolutionCache is the slice of the workspace resolver the service needs to
// invalidate after administrative edits.
type ResolutionCache interface {
	ClearAll()
}

// WorkspaceService handles business logic for workspace operations
type WorkspaceService struct {
	workspaceDAO   WorkspaceStore
	validationUtil *util.ValidationUtil
	resolution     ResolutionCache
	eventBus       *util.EventBus
}

var _ IWorkspaceService = &WorkspaceService{}

// NewWorkspaceService creates a new instance of WorkspaceService
func NewWorkspaceService(workspaceDAO WorkspaceStore, validationUtil *util.ValidationUtil, resolution ResolutionCache, eventBus *util.EventBus) *WorkspaceService {
	service := &WorkspaceService{
		workspaceDAO:   workspaceDAO,
		validationUtil: validationUtil,
		resolution:     resolution,
		eventBus:       eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe(util.EventWorkspaceUpdated, service.handleWorkspaceChanged)
	eventBus.Subscribe(util.EventWorkspaceDeleted, service.handleWorkspaceChanged)

	return service
}

// handleWorkspaceChanged clears every cached resolution. The cache has no
// per-key invalidation; bulk clearing bounds staleness to the next call.
func (s *WorkspaceService) handleWorkspaceChanged(ctx context.Context, event util.Event) error {
	workspaceID, _ := event.Payload.(string)
	logger.Info("Workspace changed, clearing resolution cache",
		zap.String("event", event.Type),
		zap.String("workspaceID", workspaceID))
	s.resolution.ClearAll()
	return nil
}

func (s *WorkspaceService) CreateWorkspace(ctx context.Context, workspace model.Workspace, creatorID string) (*model.Workspace, error) {
	if err := s.validationUtil.ValidateWorkspace(workspace); err != nil {
		return nil, err
	}

	workspaceID, err := s.workspaceDAO.CreateWorkspace(ctx, workspace, creatorID)
	if err != nil {
		return nil, err
	}

	created, err := s.workspaceDAO.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, util.EventWorkspaceUpdated, workspaceID)
	return created, nil
}

func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, workspace model.Workspace, updaterID string) (*model.Workspace, error) {
	if err := s.validationUtil.ValidateWorkspace(workspace); err != nil {
		return nil, err
	}

	updated, err := s.workspaceDAO.UpdateWorkspace(ctx, workspace, updaterID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, util.EventWorkspaceUpdated, workspace.ID)
	return updated, nil
}

func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, workspaceID string, deleterID string) error {
	if err := s.workspaceDAO.DeleteWorkspace(ctx, workspaceID, deleterID); err != nil {
		return err
	}

	s.eventBus.Publish(ctx, util.EventWorkspaceDeleted, workspaceID)
	return nil
}

func (s *WorkspaceService) GetWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	return s.workspaceDAO.GetWorkspace(ctx, workspaceID)
}

func (s *WorkspaceService) ListWorkspaces(ctx context.Context, limit, offset int) ([]*model.Workspace, error) {
	return s.workspaceDAO.ListWorkspaces(ctx, limit, offset)
}
