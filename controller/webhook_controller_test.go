// controller/webhook_controller_test.go
package controller_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sapictureday/sail/controller"
)

const webhookSecret = "webhook-test-secret"

func setupWebhookRouter(secret string) *gin.Engine {
	router := gin.New()
	wc := controller.NewWebhookController(secret, nil)
	wc.RegisterRoutes(router.Group("/api/webhooks"))
	return router
}

func signPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/webhooks/crm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Sail-Signature", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhookController_Ingest(t *testing.T) {
	body := []byte(`{"event":"order.created","order_id":"o-42"}`)

	t.Run("ValidSignatureAccepted", func(t *testing.T) {
		router := setupWebhookRouter(webhookSecret)
		w := postWebhook(router, body, signPayload(webhookSecret, body))
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("BadSignatureRejected", func(t *testing.T) {
		router := setupWebhookRouter(webhookSecret)
		w := postWebhook(router, body, signPayload("some-other-secret", body))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingSignatureRejected", func(t *testing.T) {
		router := setupWebhookRouter(webhookSecret)
		w := postWebhook(router, body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("EmptySecretRejectsEverything", func(t *testing.T) {
		router := setupWebhookRouter("")
		w := postWebhook(router, body, signPayload("", body))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
