package object

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	// ErrExists is returned by Put when a blob with the same name is already stored.
	ErrExists = errors.New("object already exists")
	// ErrNotFound is returned by Open for unknown blobs.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidName rejects names that could escape their container.
	ErrInvalidName = errors.New("invalid object name")
)

// ObjectStore defines the contract for blobs addressed by container and name.
// Put never overwrites an existing blob.
type ObjectStore interface {
	Put(ctx context.Context, container, name, contentType string, data []byte) error
	Open(ctx context.Context, container, name string) (io.ReadCloser, error)
	List(ctx context.Context, container, prefix string) ([]string, error)
}

// ValidateName checks that a blob name is relative, non-empty and free of
// traversal segments.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.HasPrefix(name, "/") || strings.Contains(name, `\`) {
		return ErrInvalidName
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return ErrInvalidName
		}
	}
	if path.Clean(name) != name {
		return ErrInvalidName
	}
	return nil
}
