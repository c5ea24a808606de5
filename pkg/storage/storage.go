package storage

import (
	"context"
	"io"
	"time"
)

// ImageStorage stores publicly viewable images (submission screenshots)
// and returns a URL the gallery can render directly.
type ImageStorage interface {
	UploadImage(ctx context.Context, r io.Reader, fileName string) (string, error)
}

// DocumentStorage stores private documents (resumes). Objects are not
// publicly reachable; callers hold the returned key and mint short-lived
// signed URLs on demand.
type DocumentStorage interface {
	UploadDocument(ctx context.Context, r io.Reader, fileName string) (string, error)
	SignedURL(key string, expiry time.Duration) (string, error)
}
