// resolver/resolver.go
package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
)

// PreferenceStore is the slice of the preference DAO the resolver reads.
type PreferenceStore interface {
	// GetPrimary returns the user's enabled primary preference, or nil when
	// no usable one exists.
	GetPrimary(ctx context.Context, userID string) (*model.WorkspacePreference, error)
	// ListDisabledWorkspaceIDs returns the workspace ids the user has
	// explicitly disabled.
	ListDisabledWorkspaceIDs(ctx context.Context, userID string) ([]string, error)
}

// WorkspaceStore is the slice of the workspace DAO the resolver reads.
type WorkspaceStore interface {
	// GetWorkspace returns a workspace by id, or nil when it does not exist.
	GetWorkspace(ctx context.Context, id string) (*model.Workspace, error)
	// ListActiveWorkspaces returns active workspaces ascending by sort order.
	ListActiveWorkspaces(ctx context.Context) ([]*model.Workspace, error)
}

// WorkspaceResolver picks the workspace that drives personalization for a
// user: an enabled primary preference pointing at an active workspace wins;
// otherwise the lowest sort-order active workspace the user has not disabled.
//
// Results are cached for a fixed TTL. Concurrent misses may recompute the
// same key more than once; recomputation is idempotent and the window
// suppresses repeats, so no per-key lock is taken.
type WorkspaceResolver struct {
	cache        *Cache
	preferences  PreferenceStore
	workspaces   WorkspaceStore
	storeTimeout time.Duration
}

func NewWorkspaceResolver(cache *Cache, preferences PreferenceStore, workspaces WorkspaceStore, storeTimeout time.Duration) *WorkspaceResolver {
	return &WorkspaceResolver{
		cache:        cache,
		preferences:  preferences,
		workspaces:   workspaces,
		storeTimeout: storeTimeout,
	}
}

func userKey(userID string) string { return "user:" + userID }
func workspaceKey(id string) string { return "workspace:" + id }

// Resolve returns the active workspace for a user, or nil when none applies.
// A non-empty overrideID resolves that workspace directly and skips the
// preference lookup. Store failures degrade to nil without caching, so the
// next call retries.
func (r *WorkspaceResolver) Resolve(ctx context.Context, userID, overrideID string) *model.Workspace {
	if overrideID != "" {
		return r.resolveByID(ctx, overrideID)
	}

	key := userKey(userID)
	if workspace, ok := r.cache.Get(key); ok {
		return workspace
	}

	workspace, err := r.recompute(ctx, userID)
	if err != nil {
		logger.Error("Workspace resolution failed",
			zap.Error(err),
			zap.String("userID", userID))
		return nil
	}

	r.cache.Set(key, workspace)
	return workspace
}

// ClearAll discards every cached resolution. Called after administrative
// edits to workspaces so staleness is bounded by the next call, not the
// remaining TTL.
func (r *WorkspaceResolver) ClearAll() {
	r.cache.ClearAll()
}

func (r *WorkspaceResolver) resolveByID(ctx context.Context, id string) *model.Workspace {
	key := workspaceKey(id)
	if workspace, ok := r.cache.Get(key); ok {
		return workspace
	}

	ctx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()

	workspace, err := r.workspaces.GetWorkspace(ctx, id)
	if err != nil {
		logger.Error("Workspace lookup failed",
			zap.Error(err),
			zap.String("workspaceID", id))
		return nil
	}

	r.cache.Set(key, workspace)
	return workspace
}

// recompute runs the fallback chain against the stores.
func (r *WorkspaceResolver) recompute(ctx context.Context, userID string) (*model.Workspace, error) {
	ctx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()

	pref, err := r.preferences.GetPrimary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref != nil {
		workspace, err := r.workspaces.GetWorkspace(ctx, pref.WorkspaceID)
		if err != nil {
			return nil, err
		}
		if workspace != nil && workspace.IsActive {
			return workspace, nil
		}
	}

	disabled, err := r.preferences.ListDisabledWorkspaceIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		skip[id] = true
	}

	active, err := r.workspaces.ListActiveWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, workspace := range active {
		if !skip[workspace.ID] {
			return workspace, nil
		}
	}
	return nil, nil
}
