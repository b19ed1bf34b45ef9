package batches

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"invoice-backend/internal/queue"
	"invoice-backend/internal/shared/config"
	"invoice-backend/internal/shared/metrics"
	"invoice-backend/internal/shared/telemetry"
)

// Submitter sends a built request to the analysis service.
type Submitter interface {
	Submit(ctx context.Context, req BatchRequest) (Submission, error)
}

// StartResult is returned to the trigger caller.
type StartResult struct {
	OK                bool        `json:"ok"`
	OperationLocation string      `json:"operationLocation"`
	ResultID          string      `json:"resultId"`
	SourceContainer   string      `json:"sourceContainer"`
	ResultContainer   string      `json:"resultContainer"`
	Prefix            string      `json:"prefix"`
	DocIntRequest     RequestBody `json:"docIntRequest"`
}

// Service starts batch jobs and keeps a ledger of them.
type Service struct {
	cfg    config.Config
	client Submitter
	runs   Repo
	events queue.Publisher
}

// NewService wires the configuration snapshot, the submit client and the
// run ledger. A nil repo falls back to memory.
func NewService(cfg config.Config, client Submitter, runs Repo) *Service {
	if runs == nil {
		runs = NewMemoryRepo()
	}
	return &Service{cfg: cfg, client: client, runs: runs, events: queue.Nop{}}
}

// WithEvents sets the publisher notified after each accepted submission.
func (s *Service) WithEvents(p queue.Publisher) *Service {
	if p != nil {
		s.events = p
	}
	return s
}

// Start builds, submits and records one batch job.
func (s *Service) Start(ctx context.Context, prefix string) (StartResult, error) {
	req, err := BuildBatchRequest(s.cfg, prefix)
	if err != nil {
		outcome := "invalid"
		if errors.Is(err, ErrConfig) {
			outcome = "config_error"
		}
		metrics.IncBatchSubmission(outcome)
		return StartResult{}, err
	}

	sub, err := s.client.Submit(ctx, req)
	if err != nil {
		metrics.IncBatchSubmission("upstream_error")
		telemetry.Error("batches.submit.failed", map[string]any{
			"prefix": req.Prefix,
			"error":  err,
		})
		return StartResult{}, err
	}
	metrics.IncBatchSubmission("accepted")

	run := Run{
		ID:                uuid.NewString(),
		Prefix:            req.Prefix,
		ResultID:          sub.ResultID,
		OperationLocation: sub.OperationLocation,
		SourceContainer:   req.SourceContainer,
		ResultContainer:   req.ResultContainer,
		SubmittedAt:       now().UTC(),
	}
	if err := s.runs.Create(ctx, run); err != nil {
		telemetry.Warn("batches.ledger.write_failed", map[string]any{
			"run_id":    run.ID,
			"result_id": run.ResultID,
			"error":     err,
		})
	}

	evt := queue.BatchSubmitted{
		RunID:             run.ID,
		ResultID:          run.ResultID,
		OperationLocation: run.OperationLocation,
		Prefix:            run.Prefix,
		ResultContainer:   run.ResultContainer,
		SubmittedAt:       run.SubmittedAt,
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		telemetry.Warn("batches.event.publish_failed", map[string]any{
			"run_id": run.ID,
			"error":  err,
		})
	}

	telemetry.Info("batches.submit.accepted", map[string]any{
		"run_id":    run.ID,
		"result_id": sub.ResultID,
		"prefix":    req.Prefix,
		"status":    sub.Status,
	})

	return StartResult{
		OK:                true,
		OperationLocation: sub.OperationLocation,
		ResultID:          sub.ResultID,
		SourceContainer:   req.SourceContainer,
		ResultContainer:   req.ResultContainer,
		Prefix:            req.Prefix,
		DocIntRequest:     req.Body,
	}, nil
}

// Runs lists recorded submissions, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]Run, error) {
	return s.runs.ListRecent(ctx, limit)
}
