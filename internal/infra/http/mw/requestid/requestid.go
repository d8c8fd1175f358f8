// Package requestid tags every request with an X-Request-ID, generating
// one when the caller did not supply it.
package requestid

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const Header = "X-Request-ID"

// ctxKey is the gin context key under which the id is stored.
const ctxKey = "request_id"

func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(Header))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKey, id)
		c.Writer.Header().Set(Header, id)
		c.Next()
	}
}

// From returns the request id set by Handler, or "" when absent.
func From(c *gin.Context) string {
	return c.GetString(ctxKey)
}
