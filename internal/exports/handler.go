package exports

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-backend/internal/shared/server/middleware"
	"invoice-backend/internal/shared/server/respond"
	"invoice-backend/internal/shared/telemetry"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxFileName    = "invoices.xlsx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Excel handles GET /docint/export/excel.
func (h *Handler) Excel(c *gin.Context) {
	mode := h.svc.DefaultMode()
	if raw := strings.TrimSpace(c.Query("mode")); raw != "" {
		parsed, err := ParseMode(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_mode", "mode must be fixed or dynamic", nil)
			return
		}
		mode = parsed
	}
	prefix := c.Query("prefix")
	if prefix != "" {
		c.Set(middleware.PrefixKey, prefix)
	}

	data, err := h.svc.Export(c.Request.Context(), Options{Mode: mode, Prefix: prefix})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoResults):
			respond.Error(c, http.StatusNotFound, "not_found", "No result JSON files found", nil)
		case errors.Is(err, ErrInvalidPrefix):
			respond.Error(c, http.StatusBadRequest, "invalid_prefix", "prefix may only contain letters, digits, '_', '-' and '/'", nil)
		case errors.Is(err, ErrInvalidMode):
			respond.Error(c, http.StatusBadRequest, "invalid_mode", "mode must be fixed or dynamic", nil)
		default:
			telemetry.Error("exports.xlsx.failed", map[string]any{"error": err, "mode": string(mode), "prefix": prefix})
			respond.Error(c, http.StatusInternalServerError, "export_failed", "Failed to build export", nil)
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+xlsxFileName)
	c.Data(http.StatusOK, xlsxContentType, data)
}
