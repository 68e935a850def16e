package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizweb/internal/logging"
)

func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []any{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id := RequestIDFrom(c.Request.Context()); id != "" {
			fields = append(fields, "request_id", id)
		}
		if st := StateFrom(c); st.EpisodeID != "" {
			fields = append(fields, "episode_id", st.EpisodeID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.Error(ctx, "HTTP request", fields...)
		case status >= 400:
			log.Warn(ctx, "HTTP request", fields...)
		default:
			log.Info(ctx, "HTTP request", fields...)
		}
	}
}
