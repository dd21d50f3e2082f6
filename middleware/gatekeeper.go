// middleware/gatekeeper.go

package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sapictureday/sail/audit"
	"github.com/sapictureday/sail/auth"
	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/util"
)

// AuthorizationTier classifies a request path.
type AuthorizationTier int

const (
	TierPublic AuthorizationTier = iota
	TierAuthenticatedOnly
	TierAdminOnly
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"

	// continuationParam carries the originally requested path through the
	// login redirect so the client can resume after authenticating.
	continuationParam = "next"
)

var publicPrefixes = []string{
	"/api/auth/",
	"/api/webhooks/",
	"/assets/",
}

var adminPrefixes = []string{
	"/admin",
	"/api/admin",
}

// TierForPath derives the authorization tier purely from the request path.
func TierForPath(path string) AuthorizationTier {
	if path == "/" || path == loginPath || path == "/healthz" {
		return TierPublic
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return TierPublic
		}
	}
	for _, prefix := range adminPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return TierAdminOnly
		}
	}
	return TierAuthenticatedOnly
}

// Gatekeeper runs on every request: it refreshes the session, classifies the
// path, and enforces the tier. Admin paths fail closed — an oracle error or
// timeout is treated exactly like a negative answer.
type Gatekeeper struct {
	sessions *auth.SessionManager
	oracle   auth.AdminChecker
	audits   audit.Service
}

func NewGatekeeper(sessions *auth.SessionManager, oracle auth.AdminChecker, audits audit.Service) *Gatekeeper {
	return &Gatekeeper{sessions: sessions, oracle: oracle, audits: audits}
}

func (g *Gatekeeper) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		carrier := auth.NewCarrier(c)
		identity := g.sessions.Refresh(c.Request.Context(), carrier)

		if identity != nil {
			c.Set(util.ContextUserIDKey, identity.UserID)
			c.Set("userEmail", identity.Email)
		}

		path := c.Request.URL.Path
		switch TierForPath(path) {
		case TierPublic:
			c.Next()
			return

		case TierAuthenticatedOnly:
			if identity == nil {
				redirectToLogin(c, path)
				return
			}
			c.Next()
			return

		case TierAdminOnly:
			if identity == nil {
				redirectToLogin(c, path)
				return
			}

			isAdmin, err := g.oracle.IsAdmin(c.Request.Context(), identity.UserID)
			if err != nil {
				// Infrastructure trouble with a security-relevant check.
				logger.Error("Admin role check failed, denying access",
					zap.Error(err),
					zap.String("userID", identity.UserID),
					zap.String("path", path))
				g.recordDenial(c, audit.ActionAdminCheckFailed, identity.UserID, path)
				redirectToDashboard(c)
				return
			}
			if !isAdmin {
				logger.Warn("Non-admin user denied admin path",
					zap.String("userID", identity.UserID),
					zap.String("path", path))
				g.recordDenial(c, audit.ActionAdminAccessDenied, identity.UserID, path)
				redirectToDashboard(c)
				return
			}
			c.Next()
			return
		}
	}
}

func (g *Gatekeeper) recordDenial(c *gin.Context, action, userID, path string) {
	if g.audits == nil {
		return
	}
	entry := audit.AuditLog{
		Timestamp:     time.Now(),
		UserID:        userID,
		Action:        action,
		ResourceID:    path,
		AccessGranted: false,
	}
	if err := g.audits.LogAction(c.Request.Context(), entry); err != nil {
		logger.Warn("Failed to write audit entry", zap.Error(err), zap.String("action", action))
	}
}

func redirectToLogin(c *gin.Context, originalPath string) {
	location := loginPath + "?" + continuationParam + "=" + url.QueryEscape(originalPath)
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

func redirectToDashboard(c *gin.Context) {
	c.Redirect(http.StatusFound, dashboardPath)
	c.Abort()
}
