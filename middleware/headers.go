// middleware/headers.go

package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecureHeaders attaches the fixed security header set to every response,
// plus advisory rate-limit headers on API paths. The advisory numbers reflect
// the static quota window; enforcement lives in RateLimiter.
func SecureHeaders(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("X-Frame-Options", "DENY")
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		header.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		header.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			reset := time.Now().Truncate(window).Add(window).Unix()
			header.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			header.Set("X-RateLimit-Remaining", strconv.Itoa(limit))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		}

		c.Next()
	}
}
