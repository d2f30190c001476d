package storage

import (
	"bytes"
	"context"
	"io"
)

// ObjectInfo contains minimal metadata about a stored object.
// This is a simplified alternative to FileInfo for callers that
// only need key and size information.
type ObjectInfo struct {
	Key  string // Object path/key
	Size int64  // Size in bytes
}

// ByteClient provides a []byte-oriented interface for storage operations.
// This is useful for callers that work with in-memory data rather than streams.
type ByteClient interface {
	// Upload stores data at the given key.
	Upload(ctx context.Context, key string, data []byte) error

	// Download retrieves the full object at the given key.
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object at the given key.
	Delete(ctx context.Context, key string) error

	// Exists checks whether an object exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns metadata for all objects whose key starts with prefix,
	// following continuation tokens until the listing is exhausted.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// byteAdapter wraps a streaming Storage and implements ByteClient.
type byteAdapter struct {
	storage Storage
}

// NewByteClient wraps a streaming Storage implementation with []byte convenience methods.
func NewByteClient(s Storage) ByteClient {
	return &byteAdapter{storage: s}
}

func (a *byteAdapter) Upload(ctx context.Context, key string, data []byte) error {
	_, err := a.storage.Upload(ctx, UploadOptions{
		Key:  key,
		Body: bytes.NewReader(data),
		Size: int64(len(data)),
	})
	return err
}

func (a *byteAdapter) Download(ctx context.Context, key string) ([]byte, error) {
	res, err := a.storage.Download(ctx, DownloadOptions{Key: key})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return io.ReadAll(res.Body)
}

func (a *byteAdapter) Delete(ctx context.Context, key string) error {
	return a.storage.Delete(ctx, key)
}

func (a *byteAdapter) Exists(ctx context.Context, key string) (bool, error) {
	return a.storage.Exists(ctx, key)
}

func (a *byteAdapter) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	opts := ListOptions{Prefix: prefix}
	for {
		page, err := a.storage.List(ctx, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range page.Files {
			objects = append(objects, ObjectInfo{Key: f.Key, Size: f.Size})
		}
		if !page.Truncated || page.NextToken == "" {
			break
		}
		opts.ContinuationToken = page.NextToken
	}
	return objects, nil
}
