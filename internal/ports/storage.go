package ports

import (
	"context"
	"io"
)

// DocumentStore persists document bytes in object storage. Metadata lives in
// the documents repository; the store only deals in opaque keys.
type DocumentStore interface {
	Upload(ctx context.Context, key string, contentType string, r io.Reader, size int64) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
