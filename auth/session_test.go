// auth/session_test.go
package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sapictureday/sail/auth"
	"github.com/sapictureday/sail/model"
)

const testSecret = "test-secret"

type fakeSessionStore struct {
	sessions map[string]model.RefreshSession
	err      error
	lookups  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]model.RefreshSession)}
}

func (s *fakeSessionStore) Save(ctx context.Context, token string, session model.RefreshSession, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.sessions[token] = session
	return nil
}

func (s *fakeSessionStore) Lookup(ctx context.Context, token string, ttl time.Duration) (*model.RefreshSession, error) {
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	session, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newManager(store auth.SessionStore) *auth.SessionManager {
	return auth.NewSessionManager(store, testSecret, 15*time.Minute, 30*24*time.Hour, 2*time.Second)
}

func expiredAccessToken(t *testing.T, userID string) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-30 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func TestSessionManager(t *testing.T) {
	user := model.User{ID: "u1", Email: "dana@example.com", Name: "Dana"}

	t.Run("Refresh_ValidAccessToken", func(t *testing.T) {
		store := newFakeSessionStore()
		manager := newManager(store)

		c, _ := newTestContext(nil)
		carrier := auth.NewCarrier(c)
		assert.NoError(t, manager.Issue(context.Background(), carrier, user))

		identity := manager.Refresh(context.Background(), carrier)
		assert.NotNil(t, identity)
		assert.Equal(t, "u1", identity.UserID)
		assert.Equal(t, "dana@example.com", identity.Email)
		// A valid access token resolves without touching the session store.
		assert.Equal(t, 0, store.lookups)
	})

	t.Run("Refresh_ExpiredAccessTokenRenews", func(t *testing.T) {
		store := newFakeSessionStore()
		store.sessions["refresh-1"] = model.RefreshSession{UserID: "u1", Email: "dana@example.com"}
		manager := newManager(store)

		c, w := newTestContext(map[string]string{
			auth.AccessTokenCookie:  expiredAccessToken(t, "u1"),
			auth.RefreshTokenCookie: "refresh-1",
		})
		carrier := auth.NewCarrier(c)

		identity := manager.Refresh(context.Background(), carrier)
		assert.NotNil(t, identity)
		assert.Equal(t, "u1", identity.UserID)

		// The renewed token must be on the forwarded request...
		renewed, ok := carrier.Get(auth.AccessTokenCookie)
		assert.True(t, ok)
		assert.NotEqual(t, expiredAccessToken(t, "u1"), renewed)

		// ...and on the outgoing response.
		names := map[string]bool{}
		for _, sc := range w.Result().Cookies() {
			names[sc.Name] = true
		}
		assert.True(t, names[auth.AccessTokenCookie])
		assert.True(t, names[auth.RefreshTokenCookie])
	})

	t.Run("Refresh_UnknownRefreshTokenIsAnonymous", func(t *testing.T) {
		manager := newManager(newFakeSessionStore())

		c, _ := newTestContext(map[string]string{auth.RefreshTokenCookie: "nope"})
		identity := manager.Refresh(context.Background(), auth.NewCarrier(c))
		assert.Nil(t, identity)
	})

	t.Run("Refresh_StoreErrorIsAnonymous", func(t *testing.T) {
		store := newFakeSessionStore()
		store.err = errors.New("redis unreachable")
		manager := newManager(store)

		c, _ := newTestContext(map[string]string{auth.RefreshTokenCookie: "refresh-1"})
		identity := manager.Refresh(context.Background(), auth.NewCarrier(c))
		assert.Nil(t, identity)
	})

	t.Run("Refresh_GarbageAccessTokenIsAnonymous", func(t *testing.T) {
		manager := newManager(newFakeSessionStore())

		c, _ := newTestContext(map[string]string{auth.AccessTokenCookie: "not-a-jwt"})
		identity := manager.Refresh(context.Background(), auth.NewCarrier(c))
		assert.Nil(t, identity)
	})

	t.Run("Refresh_TamperedSignatureIsAnonymous", func(t *testing.T) {
		manager := newManager(newFakeSessionStore())

		claims := auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
		assert.NoError(t, err)

		c, _ := newTestContext(map[string]string{auth.AccessTokenCookie: forged})
		identity := manager.Refresh(context.Background(), auth.NewCarrier(c))
		assert.Nil(t, identity)
	})

	t.Run("Revoke_DeletesSessionAndClearsCookies", func(t *testing.T) {
		store := newFakeSessionStore()
		store.sessions["refresh-1"] = model.RefreshSession{UserID: "u1"}
		manager := newManager(store)

		c, _ := newTestContext(map[string]string{auth.RefreshTokenCookie: "refresh-1"})
		carrier := auth.NewCarrier(c)
		manager.Revoke(context.Background(), carrier)

		_, ok := store.sessions["refresh-1"]
		assert.False(t, ok)
		_, ok = carrier.Get(auth.RefreshTokenCookie)
		assert.False(t, ok)
	})
}
