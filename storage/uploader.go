// Package storage holds the object-store boundary used for team badge
// images. Services depend on FileUploader; the R2 implementation is the
// only production backend.
package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object. Location is the public URL the
// badge is served from.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores and removes badge images by key. Keys are stable per
// team, so re-uploading a badge overwrites the previous one.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
