package exports

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"invoice-backend/internal/extraction"
	"invoice-backend/internal/shared/metrics"
	"invoice-backend/internal/shared/storage/object"
	"invoice-backend/internal/shared/telemetry"
	"invoice-backend/internal/shared/util"
)

const (
	defaultTimeout   = 60 * time.Second
	maxResultFileLen = 32 << 20
)

// Options selects what an export covers.
type Options struct {
	Mode   Mode
	Prefix string
}

// Service builds spreadsheet snapshots from result files.
type Service struct {
	store       object.ObjectStore
	container   string
	defaultMode Mode
	timeout     time.Duration
}

// NewService reads result files from container in store. defaultMode applies
// when a caller does not pick one.
func NewService(store object.ObjectStore, container string, defaultMode Mode) *Service {
	if defaultMode == "" {
		defaultMode = ModeFixed
	}
	return &Service{
		store:       store,
		container:   container,
		defaultMode: defaultMode,
		timeout:     defaultTimeout,
	}
}

// DefaultMode is the mode used when Options.Mode is blank.
func (s *Service) DefaultMode() Mode {
	return s.defaultMode
}

// Export lists every JSON result file, projects the first document of each
// and renders the rows. Unreadable files are skipped; zero rows is
// ErrNoResults.
func (s *Service) Export(ctx context.Context, opts Options) ([]byte, error) {
	start := time.Now()
	mode := opts.Mode
	if mode == "" {
		mode = s.defaultMode
	}
	if mode != ModeFixed && mode != ModeDynamic {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if opts.Prefix != "" && !util.ValidPrefix(opts.Prefix) {
		return nil, ErrInvalidPrefix
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names, err := s.store.List(ctx, s.container, opts.Prefix)
	if err != nil {
		metrics.IncExport("error")
		return nil, fmt.Errorf("list result files: %w", err)
	}

	docs := make([]extraction.Document, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		doc, ok := s.readDocument(ctx, name)
		if ok {
			docs = append(docs, doc)
		}
	}

	if len(docs) == 0 {
		metrics.IncExport("empty")
		return nil, ErrNoResults
	}

	columns, rows := Project(mode, docs)
	data, err := Render(columns, rows)
	if err != nil {
		metrics.IncExport("error")
		return nil, err
	}

	metrics.IncExport("ok")
	metrics.ObserveExportDuration(string(mode), time.Since(start))
	telemetry.Info("exports.xlsx.ok", map[string]any{
		"container":  s.container,
		"prefix":     opts.Prefix,
		"mode":       string(mode),
		"files":      len(names),
		"rows":       len(rows),
		"columns":    len(columns),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return data, nil
}

func (s *Service) readDocument(ctx context.Context, name string) (extraction.Document, bool) {
	rc, err := s.store.Open(ctx, s.container, name)
	if err != nil {
		skipFile(name, "download", err)
		return nil, false
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, maxResultFileLen))
	if err != nil {
		skipFile(name, "read", err)
		return nil, false
	}
	doc, ok := extraction.ParseResultFile(raw)
	if !ok {
		skipFile(name, "parse", nil)
		return nil, false
	}
	return doc, true
}

func skipFile(name, stage string, err error) {
	metrics.IncResultFileSkipped()
	fields := map[string]any{"blob": name, "stage": stage}
	if err != nil {
		fields["error"] = err
	}
	telemetry.Warn("exports.file.skipped", fields)
}
