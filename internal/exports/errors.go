package exports

import "errors"

var (
	// ErrNoResults means no result file produced a row.
	ErrNoResults = errors.New("no results")
	// ErrInvalidMode rejects an unknown export mode.
	ErrInvalidMode = errors.New("invalid export mode")
	// ErrInvalidPrefix rejects a result prefix outside [A-Za-z0-9_-/].
	ErrInvalidPrefix = errors.New("invalid prefix")
)
