// service/preference_service.go
package service

import (
	"context"

	sail_errors "github.com/sapictureday/sail/errors"
	"github.com/sapictureday/sail/model"
)

// IPreferenceService defines the interface for workspace preference operations
type IPreferenceService interface {
	SetPrimary(ctx context.Context, userID, workspaceID string) error
	SetEnabled(ctx context.Context, userID, workspaceID string, enabled bool) error
	ListPreferences(ctx context.Context, userID string) ([]*model.WorkspacePreference, error)
	ResolveActive(ctx context.Context, userID, overrideID string) *model.Workspace
}

// PreferenceStore is the DAO surface the service needs.
type PreferenceStore interface {
	SetPrimary(ctx context.Context, userID, workspaceID string) error
	SetEnabled(ctx context.Context, userID, workspaceID string, enabled bool) error
	ListPreferences(ctx context.Context, userID string) ([]*model.WorkspacePreference, error)
}

// WorkspaceGetter validates preference targets.
type WorkspaceGetter interface {
	GetWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error)
}

// ActiveResolver resolves the workspace driving personalization.
type ActiveResolver interface {
	Resolve(ctx context.Context, userID, overrideID string) *model.Workspace
	ClearAll()
}

// PreferenceService handles business logic for preference operations
type PreferenceService struct {
	preferenceDAO PreferenceStore
	workspaceDAO  WorkspaceGetter
	resolver      ActiveResolver
}

var _ IPreferenceService = &PreferenceService{}

// NewPreferenceService creates a new instance of PreferenceService
func NewPreferenceService(preferenceDAO PreferenceStore, workspaceDAO WorkspaceGetter, resolver ActiveResolver) *PreferenceService {
	return &PreferenceService{
		preferenceDAO: preferenceDAO,
		workspaceDAO:  workspaceDAO,
		resolver:      resolver,
	}
}

// SetPrimary makes workspaceID the user's primary preference. The DAO write
// is a single transaction; afterwards the resolution cache is cleared so the
// change shows up on the next resolve instead of after the TTL.
func (s *PreferenceService) SetPrimary(ctx context.Context, userID, workspaceID string) error {
	workspace, err := s.workspaceDAO.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil || !workspace.IsActive {
		return sail_errors.ErrWorkspaceNotFound
	}

	if err := s.preferenceDAO.SetPrimary(ctx, userID, workspaceID); err != nil {
		return err
	}

	s.resolver.ClearAll()
	return nil
}

func (s *PreferenceService) SetEnabled(ctx context.Context, userID, workspaceID string, enabled bool) error {
	workspace, err := s.workspaceDAO.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return sail_errors.ErrWorkspaceNotFound
	}

	if err := s.preferenceDAO.SetEnabled(ctx, userID, workspaceID, enabled); err != nil {
		return err
	}

	s.resolver.ClearAll()
	return nil
}

func (s *PreferenceService) ListPreferences(ctx context.Context, userID string) ([]*model.WorkspacePreference, error) {
	return s.preferenceDAO.ListPreferences(ctx, userID)
}

// ResolveActive returns the workspace personalizing this user's views, or
// nil when no personalization is available this cycle.
func (s *PreferenceService) ResolveActive(ctx context.Context, userID, overrideID string) *model.Workspace {
	return s.resolver.Resolve(ctx, userID, overrideID)
}
