// service/preference_service_test.go
package service_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	sail_errors "github.com/sapictureday/sail/errors"
	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
	"github.com/sapictureday/sail/service"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	os.Exit(m.Run())
}

type fakePreferenceDAO struct {
	primaryUser      string
	primaryWorkspace string
	enabled          map[string]bool
	err              error
	writes           int
}

func (d *fakePreferenceDAO) SetPrimary(ctx context.Context, userID, workspaceID string) error {
	if d.err != nil {
		return d.err
	}
	d.writes++
	d.primaryUser = userID
	d.primaryWorkspace = workspaceID
	return nil
}

func (d *fakePreferenceDAO) SetEnabled(ctx context.Context, userID, workspaceID string, enabled bool) error {
	if d.err != nil {
		return d.err
	}
	d.writes++
	d.enabled[workspaceID] = enabled
	return nil
}

func (d *fakePreferenceDAO) ListPreferences(ctx context.Context, userID string) ([]*model.WorkspacePreference, error) {
	return nil, d.err
}

type fakeWorkspaceGetter struct {
	workspaces map[string]*model.Workspace
	err        error
}

func (g *fakeWorkspaceGetter) GetWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.workspaces[workspaceID], nil
}

type fakeResolver struct {
	result *model.Workspace
	clears int
}

func (r *fakeResolver) Resolve(ctx context.Context, userID, overrideID string) *model.Workspace {
	return r.result
}

func (r *fakeResolver) ClearAll() { r.clears++ }

func newPreferenceFixture() (*fakePreferenceDAO, *fakeResolver, *service.PreferenceService) {
	dao := &fakePreferenceDAO{enabled: map[string]bool{}}
	getter := &fakeWorkspaceGetter{workspaces: map[string]*model.Workspace{
		"active":   {ID: "active", IsActive: true},
		"inactive": {ID: "inactive", IsActive: false},
	}}
	resolver := &fakeResolver{}
	return dao, resolver, service.NewPreferenceService(dao, getter, resolver)
}

func TestPreferenceService_SetPrimary(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		dao, resolver, svc := newPreferenceFixture()

		err := svc.SetPrimary(ctx, "u1", "active")
		assert.NoError(t, err)
		assert.Equal(t, "u1", dao.primaryUser)
		assert.Equal(t, "active", dao.primaryWorkspace)
		assert.Equal(t, 1, resolver.clears, "a successful write must invalidate cached resolutions")
	})

	t.Run("UnknownWorkspace", func(t *testing.T) {
		dao, resolver, svc := newPreferenceFixture()

		err := svc.SetPrimary(ctx, "u1", "missing")
		assert.ErrorIs(t, err, sail_errors.ErrWorkspaceNotFound)
		assert.Equal(t, 0, dao.writes)
		assert.Equal(t, 0, resolver.clears)
	})

	t.Run("InactiveWorkspace", func(t *testing.T) {
		dao, _, svc := newPreferenceFixture()

		err := svc.SetPrimary(ctx, "u1", "inactive")
		assert.ErrorIs(t, err, sail_errors.ErrWorkspaceNotFound)
		assert.Equal(t, 0, dao.writes)
	})

	t.Run("DAOFailureSkipsInvalidation", func(t *testing.T) {
		dao, resolver, svc := newPreferenceFixture()
		dao.err = errors.New("deadlock detected")

		err := svc.SetPrimary(ctx, "u1", "active")
		assert.Error(t, err)
		assert.Equal(t, 0, resolver.clears)
	})
}

func TestPreferenceService_SetEnabled(t *testing.T) {
	ctx := context.Background()

	t.Run("DisableInactiveWorkspaceStillAllowed", func(t *testing.T) {
		dao, resolver, svc := newPreferenceFixture()

		err := svc.SetEnabled(ctx, "u1", "inactive", false)
		assert.NoError(t, err)
		assert.False(t, dao.enabled["inactive"])
		assert.Equal(t, 1, resolver.clears)
	})

	t.Run("UnknownWorkspace", func(t *testing.T) {
		_, _, svc := newPreferenceFixture()

		err := svc.SetEnabled(ctx, "u1", "missing", true)
		assert.ErrorIs(t, err, sail_errors.ErrWorkspaceNotFound)
	})
}

func TestPreferenceService_ResolveActive(t *testing.T) {
	_, resolver, svc := newPreferenceFixture()
	resolver.result = &model.Workspace{ID: "active", IsActive: true}

	got := svc.ResolveActive(context.Background(), "u1", "")
	assert.NotNil(t, got)
	assert.Equal(t, "active", got.ID)
}
