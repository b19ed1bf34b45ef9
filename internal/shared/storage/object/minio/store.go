package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"invoice-backend/internal/shared/storage/object"
)

// Store implements ObjectStore on an S3-compatible MinIO server. Each
// container is a bucket.
type Store struct {
	client *minio.Client
}

// New connects to endpoint with static credentials.
func New(endpoint, accessKey, secretKey string, useSSL bool) (*Store, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Store{client: client}, nil
}

// Put stats the object first and refuses to replace an existing one. The
// check and the write are separate calls, so two concurrent puts of one name
// can both succeed; the later one wins.
func (s *Store) Put(ctx context.Context, container, name, contentType string, data []byte) error {
	if err := object.ValidateName(name); err != nil {
		return err
	}
	if _, err := s.client.StatObject(ctx, container, name, minio.StatObjectOptions{}); err == nil {
		return object.ErrExists
	} else if !isNotFound(err) {
		return fmt.Errorf("minio stat bucket=%s key=%s: %w", container, name, err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, container, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("minio put bucket=%s key=%s: %w", container, name, err)
	}
	return nil
}

// Open fetches an object. Missing keys surface as object.ErrNotFound.
func (s *Store) Open(ctx context.Context, container, name string) (io.ReadCloser, error) {
	if err := object.ValidateName(name); err != nil {
		return nil, err
	}
	if _, err := s.client.StatObject(ctx, container, name, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("minio stat bucket=%s key=%s: %w", container, name, err)
	}
	obj, err := s.client.GetObject(ctx, container, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio get bucket=%s key=%s: %w", container, name, err)
	}
	return obj, nil
}

// List walks the bucket recursively below prefix.
func (s *Store) List(ctx context.Context, container, prefix string) ([]string, error) {
	objectCh := s.client.ListObjects(ctx, container, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var names []string
	for info := range objectCh {
		if info.Err != nil {
			if isNotFound(info.Err) {
				return nil, nil
			}
			return nil, fmt.Errorf("minio list bucket=%s: %w", container, info.Err)
		}
		names = append(names, info.Key)
	}
	sort.Strings(names)
	return names, nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return false
}

var _ object.ObjectStore = (*Store)(nil)
