package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"invoice-backend/internal/shared/telemetry"
)

// Context keys handlers set so the request log line can correlate work.
const (
	BlobNameKey = "blobName"
	ResultIDKey = "resultId"
	PrefixKey   = "prefix"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"bytes":       c.Writer.Size(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for _, key := range []string{BlobNameKey, ResultIDKey, PrefixKey} {
			if v := c.GetString(key); v != "" {
				fields[toSnake(key)] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}

func toSnake(key string) string {
	var b strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
