package batches

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoice-backend/internal/queue"
)

type fakeSubmitter struct {
	calls int
	sub   Submission
	err   error
	last  BatchRequest
}

func (f *fakeSubmitter) Submit(ctx context.Context, req BatchRequest) (Submission, error) {
	f.calls++
	f.last = req
	return f.sub, f.err
}

type failingRepo struct{ MemoryRepo }

func (r *failingRepo) Create(ctx context.Context, run Run) error {
	return errors.New("db down")
}

type recordingPublisher struct {
	events []queue.BatchSubmitted
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt queue.BatchSubmitted) error {
	p.events = append(p.events, evt)
	return p.err
}

func TestStartRecordsRun(t *testing.T) {
	fixClock(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), "fixed")
	sub := &fakeSubmitter{sub: Submission{Status: 202, OperationLocation: "https://x/analyzeBatchResults/r-1", ResultID: "r-1"}}
	repo := NewMemoryRepo()
	svc := NewService(testConfig(), sub, repo)

	res, err := svc.Start(context.Background(), "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !res.OK || res.ResultID != "r-1" || res.Prefix != "2024-05-01/run-fixed" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.SourceContainer != "invoicebatch" || res.ResultContainer != "invoicebatch-result" {
		t.Fatalf("unexpected containers %+v", res)
	}
	if res.DocIntRequest.ResultPrefix != res.Prefix {
		t.Fatalf("docIntRequest not echoed: %+v", res.DocIntRequest)
	}

	runs, err := svc.Runs(context.Background(), 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ResultID != "r-1" || runs[0].Prefix != res.Prefix {
		t.Fatalf("unexpected runs %+v", runs)
	}
}

func TestStartInvalidPrefixMakesNoCall(t *testing.T) {
	for _, prefix := range []string{"no spaces allowed", " abc", "abc\n", "   "} {
		sub := &fakeSubmitter{}
		svc := NewService(testConfig(), sub, nil)

		_, err := svc.Start(context.Background(), prefix)
		if !errors.Is(err, ErrInvalidPrefix) {
			t.Fatalf("prefix %q: expected ErrInvalidPrefix, got %v", prefix, err)
		}
		if sub.calls != 0 {
			t.Fatalf("prefix %q: expected no network call, got %d", prefix, sub.calls)
		}
	}
}

func TestStartLedgerFailureDoesNotFailSubmission(t *testing.T) {
	sub := &fakeSubmitter{sub: Submission{Status: 202, ResultID: "r-2"}}
	svc := NewService(testConfig(), sub, &failingRepo{})

	res, err := svc.Start(context.Background(), "acme")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if res.ResultID != "r-2" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestStartPropagatesUpstreamError(t *testing.T) {
	sub := &fakeSubmitter{err: &UpstreamError{Status: 401, Body: "bad key"}}
	repo := NewMemoryRepo()
	svc := NewService(testConfig(), sub, repo)

	_, err := svc.Start(context.Background(), "")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.Status != 401 {
		t.Fatalf("expected upstream 401, got %v", err)
	}
	runs, _ := repo.ListRecent(context.Background(), 10)
	if len(runs) != 0 {
		t.Fatalf("failed submissions must not be recorded")
	}
}

func TestMemoryRepoOrdersAndClamps(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		if err := repo.Create(context.Background(), Run{ID: string(rune('a' + i%26)), SubmittedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	runs, _ := repo.ListRecent(context.Background(), 0)
	if len(runs) != defaultRunsLimit {
		t.Fatalf("default limit: got %d", len(runs))
	}
	if !runs[0].SubmittedAt.After(runs[1].SubmittedAt) {
		t.Fatalf("expected newest first")
	}
	runs, _ = repo.ListRecent(context.Background(), 1000)
	if len(runs) != maxRunsLimit {
		t.Fatalf("max limit: got %d", len(runs))
	}
}

func TestStartPublishesEvent(t *testing.T) {
	fixClock(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), "fixed")
	sub := &fakeSubmitter{sub: Submission{Status: 202, ResultID: "r-9"}}
	pub := &recordingPublisher{}
	svc := NewService(testConfig(), sub, nil).WithEvents(pub)

	if _, err := svc.Start(context.Background(), "2024-05"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected one event, got %d", len(pub.events))
	}
	evt := pub.events[0]
	if evt.ResultID != "r-9" || evt.Prefix != "2024-05" || evt.ResultContainer != "invoicebatch-result" {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestStartPublishFailureDoesNotFailSubmission(t *testing.T) {
	sub := &fakeSubmitter{sub: Submission{Status: 202, ResultID: "r-10"}}
	pub := &recordingPublisher{err: errors.New("queue down")}
	svc := NewService(testConfig(), sub, nil).WithEvents(pub)

	res, err := svc.Start(context.Background(), "2024-05")
	if err != nil || !res.OK {
		t.Fatalf("expected success despite publish failure, got %+v, %v", res, err)
	}
}
