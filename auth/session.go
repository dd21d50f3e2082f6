// auth/session.go
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
)

// Cookie names for the session token pair.
const (
	AccessTokenCookie  = "sail_access_token"
	RefreshTokenCookie = "sail_refresh_token"
)

// Claims is the access-token payload.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// SessionStore is the refresh-token backend.
type SessionStore interface {
	Save(ctx context.Context, token string, session model.RefreshSession, ttl time.Duration) error
	Lookup(ctx context.Context, token string, ttl time.Duration) (*model.RefreshSession, error)
	Delete(ctx context.Context, token string) error
}

// SessionManager validates and renews the session token pair carried on each
// request. Refresh never returns an error: every failure degrades to an
// anonymous identity so the authorization step can run on the "no identity"
// branch.
type SessionManager struct {
	store      SessionStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	timeout    time.Duration
}

func NewSessionManager(store SessionStore, secret string, accessTTL, refreshTTL, timeout time.Duration) *SessionManager {
	return &SessionManager{
		store:      store,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		timeout:    timeout,
	}
}

// Refresh resolves the identity for a request. The access token is fully
// verified every time; a "cookie is present" check is not enough because only
// verification proves the credential is still cryptographically valid. When
// the access token is missing or expired but a live refresh token exists, a
// new access token is minted and written through the carrier so both the
// downstream handlers and the client observe it.
func (m *SessionManager) Refresh(ctx context.Context, carrier *Carrier) *model.Identity {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if token, ok := carrier.Get(AccessTokenCookie); ok {
		if identity := m.verifyAccessToken(token); identity != nil {
			return identity
		}
	}

	refreshToken, ok := carrier.Get(RefreshTokenCookie)
	if !ok {
		return nil
	}

	session, err := m.store.Lookup(ctx, refreshToken, m.refreshTTL)
	if err != nil {
		logger.Warn("Session refresh failed, treating request as anonymous", zap.Error(err))
		return nil
	}
	if session == nil {
		return nil
	}

	accessToken, err := m.mintAccessToken(*session)
	if err != nil {
		logger.Error("Failed to mint access token during refresh", zap.Error(err))
		return nil
	}

	carrier.Set(AccessTokenCookie, accessToken, m.accessTTL)
	carrier.Set(RefreshTokenCookie, refreshToken, m.refreshTTL)

	return &model.Identity{UserID: session.UserID, Email: session.Email, Name: session.Name}
}

// Issue creates a fresh token pair for an authenticated user.
func (m *SessionManager) Issue(ctx context.Context, carrier *Carrier, user model.User) error {
	session := model.RefreshSession{UserID: user.ID, Email: user.Email, Name: user.Name}

	accessToken, err := m.mintAccessToken(session)
	if err != nil {
		return fmt.Errorf("failed to mint access token: %w", err)
	}

	refreshToken := uuid.New().String()
	if err := m.store.Save(ctx, refreshToken, session, m.refreshTTL); err != nil {
		return fmt.Errorf("failed to store refresh session: %w", err)
	}

	carrier.Set(AccessTokenCookie, accessToken, m.accessTTL)
	carrier.Set(RefreshTokenCookie, refreshToken, m.refreshTTL)
	return nil
}

// Revoke deletes the refresh session and clears both cookies.
func (m *SessionManager) Revoke(ctx context.Context, carrier *Carrier) {
	if refreshToken, ok := carrier.Get(RefreshTokenCookie); ok {
		if err := m.store.Delete(ctx, refreshToken); err != nil {
			logger.Warn("Failed to delete refresh session", zap.Error(err))
		}
	}
	carrier.Clear(AccessTokenCookie)
	carrier.Clear(RefreshTokenCookie)
}

func (m *SessionManager) verifyAccessToken(token string) *model.Identity {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil
	}
	return &model.Identity{UserID: claims.Subject, Email: claims.Email, Name: claims.Name}
}

func (m *SessionManager) mintAccessToken(session model.RefreshSession) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			Issuer:    "sail",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		Email: session.Email,
		Name:  session.Name,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}
