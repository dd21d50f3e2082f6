// controller/auth_controller_test.go
package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sapictureday/sail/auth"
	"github.com/sapictureday/sail/controller"
	sail_errors "github.com/sapictureday/sail/errors"
	"github.com/sapictureday/sail/model"
)

type fakeUserLookup struct {
	users map[string]*model.User
}

func (f *fakeUserLookup) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, sail_errors.ErrUserNotFound
	}
	return user, nil
}

type memorySessionStore struct {
	sessions map[string]model.RefreshSession
}

func (s *memorySessionStore) Save(ctx context.Context, token string, session model.RefreshSession, ttl time.Duration) error {
	s.sessions[token] = session
	return nil
}

func (s *memorySessionStore) Lookup(ctx context.Context, token string, ttl time.Duration) (*model.RefreshSession, error) {
	session, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func setupAuthRouter() (*gin.Engine, *memorySessionStore) {
	hash, _ := auth.HashPassword("correct-horse")
	lookup := &fakeUserLookup{users: map[string]*model.User{
		"amy@sapictureday.com": {ID: "user-1", Name: "Amy", Email: "amy@sapictureday.com", PasswordHash: hash},
	}}
	store := &memorySessionStore{sessions: map[string]model.RefreshSession{}}
	manager := auth.NewSessionManager(store, "auth-test-secret", 15*time.Minute, 30*24*time.Hour, 2*time.Second)

	router := gin.New()
	ac := controller.NewAuthController(lookup, manager)
	ac.RegisterRoutes(router.Group("/api/auth"))
	return router, store
}

func postLogin(router *gin.Engine, email, password string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(gin.H{"email": email, "password": password})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, store := setupAuthRouter()

		w := postLogin(router, "amy@sapictureday.com", "correct-horse")
		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body["user_id"])

		cookies := map[string]string{}
		for _, cookie := range w.Result().Cookies() {
			cookies[cookie.Name] = cookie.Value
		}
		assert.NotEmpty(t, cookies[auth.AccessTokenCookie])
		assert.NotEmpty(t, cookies[auth.RefreshTokenCookie])
		assert.Len(t, store.sessions, 1)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		router, store := setupAuthRouter()

		w := postLogin(router, "amy@sapictureday.com", "wrong")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, store.sessions)
	})

	t.Run("UnknownEmailLooksLikeWrongPassword", func(t *testing.T) {
		router, _ := setupAuthRouter()

		known := postLogin(router, "amy@sapictureday.com", "wrong")
		unknown := postLogin(router, "nobody@sapictureday.com", "wrong")
		assert.Equal(t, http.StatusUnauthorized, known.Code)
		assert.Equal(t, unknown.Code, known.Code)
		assert.JSONEq(t, known.Body.String(), unknown.Body.String())
	})

	t.Run("MalformedEmail", func(t *testing.T) {
		router, _ := setupAuthRouter()

		w := postLogin(router, "not-an-email", "whatever")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthController_Logout(t *testing.T) {
	router, store := setupAuthRouter()

	login := postLogin(router, "amy@sapictureday.com", "correct-horse")
	assert.Equal(t, http.StatusOK, login.Code)
	assert.Len(t, store.sessions, 1)

	req, _ := http.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	for _, cookie := range login.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.sessions, "logout must revoke the stored refresh session")
}
