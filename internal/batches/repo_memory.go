package batches

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps runs in process memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	runs []Run
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores the run.
func (r *MemoryRepo) Create(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

// ListRecent returns up to limit runs, newest first.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := append([]Run(nil), r.runs...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if limit = clampLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
