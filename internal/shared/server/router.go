package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-backend/internal/batches"
	"invoice-backend/internal/exports"
	"invoice-backend/internal/services/health"
	"invoice-backend/internal/shared/config"
	"invoice-backend/internal/shared/metrics"
	"invoice-backend/internal/shared/server/middleware"
	"invoice-backend/internal/uploads"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupTrigger = "TRIGGER"
	rateGroupExport  = "EXPORT"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config        config.Config
	UploadHandler *uploads.Handler
	BatchHandler  *batches.Handler
	ExportHandler *exports.Handler
	Health        *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(cfg)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		st := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !st.OK {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, st)
	})

	if deps.UploadHandler != nil {
		api.POST("/upload/invoice", deps.UploadHandler.Invoice)
	}

	docint := api.Group("/docint")
	if deps.BatchHandler != nil {
		secret := middleware.FlowSecret(func() string { return cfg.FlowSharedSecret })
		docint.POST("/batch/start", secret, deps.BatchHandler.Start)
		docint.GET("/batch/runs", secret, deps.BatchHandler.Runs)
	}
	if deps.ExportHandler != nil {
		docint.GET("/export/excel", deps.ExportHandler.Excel)
	}

	return r
}

func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	rps, burst := cfg.RateLimitRPS, cfg.RateLimitBurst
	return middleware.RateLimitConfig{
		DefaultGroup: rateGroupDefault,
		GroupFor: func(c *gin.Context) string {
			switch c.FullPath() {
			case "/api/v1/docint/batch/start":
				return rateGroupTrigger
			case "/api/v1/docint/export/excel":
				return rateGroupExport
			case "/api/v1/health", "/metrics":
				return "UNLIMITED"
			}
			return rateGroupDefault
		},
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: rps, Burst: burst},
			rateGroupTrigger: {Rate: rps / 5, Burst: max(1, burst/5)},
			rateGroupExport:  {Rate: rps / 2, Burst: max(1, burst/2)},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
