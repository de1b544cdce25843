package service

import (
	"context"
	"io"
)

// FileStorage is satisfied by infrastructure/storage.S3Storage.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignDownload(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
