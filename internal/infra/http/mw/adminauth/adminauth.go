// Package adminauth guards mutating endpoints (manual refresh) behind a
// shared API key.
package adminauth

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

type Middleware struct {
	apiKey string
}

func New(key string) *Middleware {
	return &Middleware{apiKey: strings.TrimSpace(key)}
}

func NewFromEnv() *Middleware {
	return New(os.Getenv("ADMIN_API_KEY"))
}

// Enabled reports whether a key is configured. When it is not, admin
// routes are mounted open and the middleware should be skipped.
func (m *Middleware) Enabled() bool { return m.apiKey != "" }

func (m *Middleware) checkKey(r *http.Request) bool {
	if k := strings.TrimSpace(r.Header.Get("X-API-Key")); k != "" {
		return k == m.apiKey
	}
	const pfx = "Bearer "
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); strings.HasPrefix(auth, pfx) {
		return strings.TrimSpace(auth[len(pfx):]) == m.apiKey
	}
	return false
}

func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Enabled() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": "admin endpoints disabled (ADMIN_API_KEY is empty)"})
			return
		}
		if !m.checkKey(c.Request) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
