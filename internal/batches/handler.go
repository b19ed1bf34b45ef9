package batches

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-backend/internal/shared/server/middleware"
	"invoice-backend/internal/shared/server/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type startRequest struct {
	Prefix string `json:"prefix"`
}

// Start handles POST /docint/batch/start. The body is optional.
func (h *Handler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "Request body must be JSON", nil)
		return
	}

	result, err := h.svc.Start(c.Request.Context(), req.Prefix)
	if err != nil {
		var upstream *UpstreamError
		switch {
		case errors.Is(err, ErrInvalidPrefix):
			respond.Error(c, http.StatusBadRequest, "invalid_prefix", "prefix may only contain letters, digits, '_', '-' and '/'", nil)
		case errors.Is(err, ErrConfig):
			respond.Error(c, http.StatusInternalServerError, "config_error", err.Error(), nil)
		case errors.As(err, &upstream):
			respond.Error(c, upstream.Status, "upstream_error", "Batch start failed", gin.H{"body": upstream.Body})
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_unavailable", "Batch start failed", nil)
		}
		return
	}

	c.Set(middleware.ResultIDKey, result.ResultID)
	c.Set(middleware.PrefixKey, result.Prefix)
	respond.OK(c, result)
}

// Runs handles GET /docint/batch/runs.
func (h *Handler) Runs(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer", nil)
			return
		}
		limit = v
	}

	runs, err := h.svc.Runs(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "ledger_unavailable", "Failed to list batch runs", nil)
		return
	}
	if runs == nil {
		runs = []Run{}
	}
	respond.OK(c, gin.H{"runs": runs})
}
