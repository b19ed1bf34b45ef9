package batches

import (
	"context"
	"time"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// Run is one accepted batch submission.
type Run struct {
	ID                string    `json:"id"`
	Prefix            string    `json:"prefix"`
	ResultID          string    `json:"resultId"`
	OperationLocation string    `json:"operationLocation"`
	SourceContainer   string    `json:"sourceContainer"`
	ResultContainer   string    `json:"resultContainer"`
	SubmittedAt       time.Time `json:"submittedAt"`
}

// Repo records submitted runs.
type Repo interface {
	Create(ctx context.Context, run Run) error
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRunsLimit
	}
	if limit > maxRunsLimit {
		return maxRunsLimit
	}
	return limit
}
