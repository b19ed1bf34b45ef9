package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-backend/internal/shared/metrics"
	"invoice-backend/internal/shared/server/middleware"
	"invoice-backend/internal/shared/server/respond"
	"invoice-backend/internal/shared/storage/object"
	"invoice-backend/internal/shared/telemetry"
)

// maxRequestBytes bounds the JSON body; base64 inflates payloads by a third.
const maxRequestBytes = 40 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Invoice handles POST /upload/invoice.
func (h *Handler) Invoice(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.IncUpload("too_large")
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "Upload exceeds the size limit", nil)
			return
		}
		metrics.IncUpload("invalid")
		respond.Error(c, http.StatusBadRequest, "invalid_body", "Request body must be JSON", nil)
		return
	}

	res, err := h.svc.UploadInvoice(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedMediaType):
			metrics.IncUpload("unsupported_media_type")
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "Only application/pdf uploads are allowed", nil)
		case errors.Is(err, ErrInvalidInput):
			metrics.IncUpload("invalid")
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, object.ErrExists):
			metrics.IncUpload("conflict")
			respond.Error(c, http.StatusConflict, "already_exists", "A blob with this name already exists", nil)
		default:
			metrics.IncUpload("error")
			telemetry.Error("uploads.invoice.failed", map[string]any{"error": err})
			respond.Error(c, http.StatusInternalServerError, "storage_error", "Blob upload failed", nil)
		}
		return
	}

	c.Set(middleware.BlobNameKey, res.BlobName)
	respond.OK(c, res)
}
