package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-backend/internal/shared/server/respond"
)

// FlowSecretHeader carries the shared secret on trigger routes.
const FlowSecretHeader = "x-flow-secret"

// FlowSecret guards a route with a shared secret. expected is called on every
// request; the router passes the value from its config snapshot, so a new
// secret takes effect after a restart.
func FlowSecret(expected func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		want := ""
		if expected != nil {
			want = strings.TrimSpace(expected())
		}
		if want == "" {
			respond.Error(c, http.StatusInternalServerError, "config_error", "FLOW_SHARED_SECRET is not configured", nil)
			return
		}

		got := c.GetHeader(FlowSecretHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}
		c.Next()
	}
}
