package logger

import (
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// SetupGin 接入访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Next()

		fields := []any{
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Int("status", c.Writer.Status()),
			log.String("client_ip", c.ClientIP()),
		}

		if c.Writer.Status() >= 500 {
			log.ErrorContext(c.Request.Context(), "GIN_ACCESS", fields...)
		} else {
			log.InfoContext(c.Request.Context(), "GIN_ACCESS", fields...)
		}
	})

	r.Use(gin.Recovery())
}
