package azure

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"invoice-backend/internal/shared/storage/object"
)

// Store implements ObjectStore on Azure Blob Storage.
type Store struct {
	client *azblob.Client
}

// New builds a client from an account connection string.
func New(connectionString string) (*Store, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("azure storage connection string is required")
	}
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return &Store{client: client}, nil
}

// Put uploads a block blob guarded by If-None-Match: *.
func (s *Store) Put(ctx context.Context, container, name, contentType string, data []byte) error {
	if err := object.ValidateName(name); err != nil {
		return err
	}
	opts := &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)},
		AccessConditions: &blob.AccessConditions{
			ModifiedAccessConditions: &blob.ModifiedAccessConditions{IfNoneMatch: to.Ptr(azcore.ETagAny)},
		},
	}
	if _, err := s.client.UploadBuffer(ctx, container, name, data, opts); err != nil {
		if bloberror.HasCode(err, bloberror.BlobAlreadyExists, bloberror.ConditionNotMet) {
			return object.ErrExists
		}
		return fmt.Errorf("upload blob container=%s name=%s: %w", container, name, err)
	}
	return nil
}

// Open streams a blob.
func (s *Store) Open(ctx context.Context, container, name string) (io.ReadCloser, error) {
	if err := object.ValidateName(name); err != nil {
		return nil, err
	}
	resp, err := s.client.DownloadStream(ctx, container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("download blob container=%s name=%s: %w", container, name, err)
	}
	return resp.Body, nil
}

// List returns every blob name in container starting with prefix.
func (s *Store) List(ctx context.Context, container, prefix string) ([]string, error) {
	opts := &azblob.ListBlobsFlatOptions{}
	if prefix != "" {
		opts.Prefix = to.Ptr(prefix)
	}
	pager := s.client.NewListBlobsFlatPager(container, opts)

	var names []string
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if bloberror.HasCode(err, bloberror.ContainerNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("list blobs container=%s: %w", container, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

var _ object.ObjectStore = (*Store)(nil)

// ContainerURL is the public address of a container for accountName.
func ContainerURL(accountName, container string) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s", accountName, container)
}

