// middleware/headers_test.go
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sapictureday/sail/middleware"
)

func serveWithHeaders(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Use(middleware.SecureHeaders(100, time.Minute))
	router.GET("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/preferences", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, err := http.NewRequest(http.MethodGet, path, nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSecureHeaders(t *testing.T) {
	t.Run("FixedSetOnEveryResponse", func(t *testing.T) {
		w := serveWithHeaders(t, "/login")

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
		assert.Equal(t, "max-age=63072000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
		assert.Equal(t, "camera=(), microphone=(), geolocation=()", w.Header().Get("Permissions-Policy"))
	})

	t.Run("RateLimitHeadersOnlyOnAPIPaths", func(t *testing.T) {
		page := serveWithHeaders(t, "/login")
		assert.Empty(t, page.Header().Get("X-RateLimit-Limit"))

		api := serveWithHeaders(t, "/api/preferences")
		assert.Equal(t, "100", api.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "100", api.Header().Get("X-RateLimit-Remaining"))

		reset, err := strconv.ParseInt(api.Header().Get("X-RateLimit-Reset"), 10, 64)
		assert.NoError(t, err)
		assert.Greater(t, reset, time.Now().Unix())
	})
}
