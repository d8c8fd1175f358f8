package httpinfra

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"marketwatch/internal/infra/http/mw/requestid"
)

// NewRouter builds the shared gin engine: panic recovery, request ids
// and one structured access-log line per request.
func NewRouter(log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Handler())
	r.Use(accessLog(log))
	return r
}

func accessLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start).Round(time.Millisecond).String(),
			"request_id", requestid.From(c),
		)
	}
}
