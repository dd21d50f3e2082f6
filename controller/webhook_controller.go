// controller/webhook_controller.go
package controller

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sapictureday/sail/audit"
	sail_errors "github.com/sapictureday/sail/errors"
	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/util"
)

const signatureHeader = "X-Sail-Signature"

// WebhookController ingests events from external tooling. It verifies the
// HMAC signature and records the delivery; processing happens elsewhere.
type WebhookController struct {
	secret string
	audits audit.Service
}

func NewWebhookController(secret string, audits audit.Service) *WebhookController {
	return &WebhookController{secret: secret, audits: audits}
}

// RegisterRoutes registers the API routes
func (wc *WebhookController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/:source", wc.Ingest)
}

// Ingest endpoint
func (wc *WebhookController) Ingest(c *gin.Context) {
	source := c.Param("source")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	if !wc.verifySignature(body, c.GetHeader(signatureHeader)) {
		logger.Warn("Webhook rejected: bad signature",
			zap.String("source", source),
			zap.String("ip", c.ClientIP()))
		wc.record(c, audit.ActionWebhookRejected, source, nil)
		util.RespondWithError(c, http.StatusUnauthorized, "Invalid signature", sail_errors.ErrInvalidSignature)
		return
	}

	wc.record(c, audit.ActionWebhookReceived, source, body)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (wc *WebhookController) verifySignature(body []byte, signature string) bool {
	if wc.secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(wc.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (wc *WebhookController) record(c *gin.Context, action, source string, body []byte) {
	if wc.audits == nil {
		return
	}
	entry := audit.AuditLog{
		Timestamp:     time.Now(),
		Action:        action,
		ResourceID:    source,
		AccessGranted: action == audit.ActionWebhookReceived,
		ChangeDetails: json.RawMessage(body),
	}
	if err := wc.audits.LogAction(c, entry); err != nil {
		logger.Warn("Failed to record webhook delivery",
			zap.Error(err),
			zap.String("source", source))
	}
}
