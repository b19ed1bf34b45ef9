package batches

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoice-backend/internal/shared/config"
	"invoice-backend/internal/shared/storage/object/azure"
	"invoice-backend/internal/shared/util"
)

var (
	now      = time.Now
	newRunID = uuid.NewString
)

// BlobSource points the job at the uploaded documents.
type BlobSource struct {
	ContainerURL string `json:"containerUrl"`
	Prefix       string `json:"prefix,omitempty"`
}

// RequestBody is the analyzeBatch JSON payload.
type RequestBody struct {
	AzureBlobSource    BlobSource `json:"azureBlobSource"`
	ResultContainerURL string     `json:"resultContainerUrl"`
	ResultPrefix       string     `json:"resultPrefix,omitempty"`
	OverwriteExisting  bool       `json:"overwriteExisting"`
}

// BatchRequest is a ready-to-send analyzeBatch call.
type BatchRequest struct {
	URL             string
	Body            RequestBody
	Prefix          string
	SourceContainer string
	ResultContainer string
	Timeout         time.Duration

	key string
}

// BuildBatchRequest validates cfg and composes the outbound request. A
// non-empty prefix must match [A-Za-z0-9_-/]+ exactly, surrounding
// whitespace included, and scopes both the source
// documents and the results; with no prefix, results go under a generated
// "YYYY-MM-DD/run-<uuid>" partition.
func BuildBatchRequest(cfg config.Config, prefix string) (BatchRequest, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.DocIntEndpoint), "/")
	var missing []string
	if endpoint == "" {
		missing = append(missing, "DOCINT_ENDPOINT")
	}
	if strings.TrimSpace(cfg.DocIntKey) == "" {
		missing = append(missing, "DOCINT_KEY")
	}
	if strings.TrimSpace(cfg.StorageAccountName) == "" {
		missing = append(missing, "AZURE_STORAGE_ACCOUNT_NAME")
	}
	if len(missing) > 0 {
		return BatchRequest{}, fmt.Errorf("%w: missing %s", ErrConfig, strings.Join(missing, ", "))
	}

	if prefix != "" && !util.ValidPrefix(prefix) {
		return BatchRequest{}, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}

	body := RequestBody{
		AzureBlobSource: BlobSource{
			ContainerURL: azure.ContainerURL(cfg.StorageAccountName, cfg.SourceContainer),
		},
		ResultContainerURL: azure.ContainerURL(cfg.StorageAccountName, cfg.ResultContainer),
		OverwriteExisting:  true,
	}
	effective := prefix
	if prefix != "" {
		body.AzureBlobSource.Prefix = prefix
	} else {
		effective = GeneratePrefix()
	}
	body.ResultPrefix = effective

	timeout := cfg.DocIntTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return BatchRequest{
		URL:             analyzeBatchURL(endpoint, cfg.DocIntModelID, cfg.DocIntAPIVersion),
		Body:            body,
		Prefix:          effective,
		SourceContainer: cfg.SourceContainer,
		ResultContainer: cfg.ResultContainer,
		Timeout:         timeout,
		key:             cfg.DocIntKey,
	}, nil
}

// GeneratePrefix returns a collision-free result partition for today (UTC).
func GeneratePrefix() string {
	return now().UTC().Format("2006-01-02") + "/run-" + newRunID()
}

func analyzeBatchURL(endpoint, modelID, apiVersion string) string {
	if modelID == "" {
		modelID = "prebuilt-invoice"
	}
	if apiVersion == "" {
		apiVersion = "2024-11-30"
	}
	q := url.Values{}
	q.Set("api-version", apiVersion)
	return fmt.Sprintf("%s/documentintelligence/documentModels/%s:analyzeBatch?%s",
		endpoint, url.PathEscape(modelID), q.Encode())
}
