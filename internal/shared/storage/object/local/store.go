package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"invoice-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem. Each container is a
// directory below baseDir; blob names may contain "/" separated segments.
type Store struct {
	baseDir string
}

var copyBody = io.Copy

// New creates a new local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes data to container/name, failing with object.ErrExists if the
// blob is already present. A failed write removes the partial file. The
// filesystem keeps no content type.
func (s *Store) Put(ctx context.Context, container, name, _ string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.resolve(container, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return object.ErrExists
		}
		return fmt.Errorf("open file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(fullPath)
		}
	}()

	if _, err := copyBody(f, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// Open opens a stored blob for reading.
func (s *Store) Open(ctx context.Context, container, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.resolve(container, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, object.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// List returns the names of all blobs in container starting with prefix,
// sorted. A missing container yields an empty list.
func (s *Store) List(ctx context.Context, container, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := s.containerDir(container)
	if err != nil {
		return nil, err
	}

	var names []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) && p == root {
				return filepath.SkipDir
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk container %s: %w", container, err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) containerDir(container string) (string, error) {
	if container == "" || strings.ContainsAny(container, `/\`) || container == "." || container == ".." {
		return "", object.ErrInvalidName
	}
	return filepath.Join(s.baseDir, container), nil
}

func (s *Store) resolve(container, name string) (string, error) {
	root, err := s.containerDir(container)
	if err != nil {
		return "", err
	}
	if err := object.ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(name)), nil
}

var _ object.ObjectStore = (*Store)(nil)
