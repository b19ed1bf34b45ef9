package uploads

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"invoice-backend/internal/extract"
	"invoice-backend/internal/shared/metrics"
	"invoice-backend/internal/shared/storage/object"
	"invoice-backend/internal/shared/telemetry"
	"invoice-backend/internal/shared/util"
)

const (
	defaultFileName    = "invoice.pdf"
	pdfContentType     = "application/pdf"
	blobTimestampStyle = "20060102_150405"
)

// Input is the decoded JSON body of an invoice upload.
type Input struct {
	FileName      string `json:"fileName"`
	ContentType   string `json:"contentType"`
	ContentBase64 string `json:"contentBase64"`
}

// Result is returned to the caller after the blob is stored.
type Result struct {
	OK        bool   `json:"ok"`
	Container string `json:"container"`
	BlobName  string `json:"blobName"`
	Size      int    `json:"size"`
	Pages     int    `json:"pages"`
}

// Service stores invoice PDFs in the source container.
type Service struct {
	store     object.ObjectStore
	container string
	now       func() time.Time
}

func NewService(store object.ObjectStore, container string) *Service {
	return &Service{store: store, container: container, now: time.Now}
}

// UploadInvoice validates and decodes in, then writes it under a
// timestamped, slugified name. It never replaces an existing blob.
func (s *Service) UploadInvoice(ctx context.Context, in Input) (Result, error) {
	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" {
		fileName = defaultFileName
	}
	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" {
		contentType = pdfContentType
	}

	encoded := strings.TrimSpace(in.ContentBase64)
	if encoded == "" {
		return Result{}, fmt.Errorf("%w: contentBase64 is required", ErrInvalidInput)
	}
	if !strings.EqualFold(contentType, pdfContentType) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	data, err := decodePayload(encoded)
	if err != nil {
		return Result{}, err
	}

	blobName := s.now().UTC().Format(blobTimestampStyle) + "_" + util.SlugifyFileName(fileName)

	info, inspectErr := extract.InspectPDF(data)
	if inspectErr != nil {
		telemetry.Warn("uploads.invoice.unreadable_pdf", map[string]any{
			"blob":      blobName,
			"has_magic": info.HasMagic,
			"error":     inspectErr,
		})
	}

	if err := s.store.Put(ctx, s.container, blobName, pdfContentType, data); err != nil {
		return Result{}, err
	}

	telemetry.Info("uploads.invoice.stored", map[string]any{
		"container": s.container,
		"blob":      blobName,
		"size":      len(data),
		"pages":     info.Pages,
	})
	metrics.IncUpload("stored")

	return Result{
		OK:        true,
		Container: s.container,
		BlobName:  blobName,
		Size:      len(data),
		Pages:     info.Pages,
	}, nil
}

// decodePayload strips an optional data-URL header and decodes strict
// standard base64.
func decodePayload(encoded string) ([]byte, error) {
	if i := strings.Index(encoded, ","); i >= 0 {
		encoded = encoded[i+1:]
	}
	data, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: contentBase64 is not valid base64", ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: contentBase64 decodes to an empty file", ErrInvalidInput)
	}
	return data, nil
}
