package batches

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	subscriptionKeyHeader   = "Ocp-Apim-Subscription-Key"
	operationLocationHeader = "Operation-Location"
)

// Submission is the outcome of an accepted analyzeBatch call.
type Submission struct {
	Status            int
	OperationLocation string
	ResultID          string
}

// Client sends analyzeBatch requests. It never retries.
type Client struct {
	httpClient *http.Client
}

// NewClient wraps httpClient, or a default client when nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// Submit posts req once, bounded by req.Timeout. Non-2xx answers become
// *UpstreamError.
func (c *Client) Submit(ctx context.Context, req BatchRequest) (Submission, error) {
	payload, err := json.Marshal(req.Body)
	if err != nil {
		return Submission{}, fmt.Errorf("encode batch request: %w", err)
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(payload))
	if err != nil {
		return Submission{}, fmt.Errorf("build batch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(subscriptionKeyHeader, req.key)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Submission{}, fmt.Errorf("post analyzeBatch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return Submission{}, newUpstreamError(resp.StatusCode, body)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	location := resp.Header.Get(operationLocationHeader)
	return Submission{
		Status:            resp.StatusCode,
		OperationLocation: location,
		ResultID:          ResultIDFromLocation(location),
	}, nil
}

// ResultIDFromLocation returns the last path segment of an absolute
// Operation-Location URL, or "" when the header is missing or malformed.
func ResultIDFromLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	p := strings.TrimRight(u.Path, "/")
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	return p[idx+1:]
}
