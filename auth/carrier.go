// auth/carrier.go
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Carrier adapts the session cookies of one request/response exchange.
// Writes go to the outgoing response AND to the forwarded request, so a
// handler running after a token renewal sees the renewed value, not the one
// the client sent. Partial propagation is a correctness bug.
type Carrier struct {
	c *gin.Context
}

func NewCarrier(c *gin.Context) *Carrier {
	return &Carrier{c: c}
}

// Get returns the current value of a session entry, including any value
// written earlier in this exchange.
func (cr *Carrier) Get(name string) (string, bool) {
	cookie, err := cr.c.Request.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Set writes a session entry to the response and mirrors it onto the
// forwarded request.
func (cr *Carrier) Set(name, value string, ttl time.Duration) {
	http.SetCookie(cr.c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	cr.patchRequest(name, value)
}

// Clear expires a session entry on the response and removes it from the
// forwarded request.
func (cr *Carrier) Clear(name string) {
	http.SetCookie(cr.c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	cr.patchRequest(name, "")
}

// patchRequest rewrites the request Cookie header with name set to value,
// removing it when value is empty.
func (cr *Carrier) patchRequest(name, value string) {
	var parts []string
	replaced := false
	for _, ck := range cr.c.Request.Cookies() {
		if ck.Name == name {
			if value != "" && !replaced {
				parts = append(parts, name+"="+value)
				replaced = true
			}
			continue
		}
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	if !replaced && value != "" {
		parts = append(parts, name+"="+value)
	}
	if len(parts) == 0 {
		cr.c.Request.Header.Del("Cookie")
		return
	}
	cr.c.Request.Header.Set("Cookie", strings.Join(parts, "; "))
}
