package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcsStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage creates a DocumentStorage over a private GCS bucket.
// credentialsFile may be empty, in which case application default
// credentials are used.
func NewGCSStorage(ctx context.Context, bucket, credentialsFile string) (DocumentStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gcs client: %w", err)
	}

	return &gcsStorage{client: client, bucket: bucket}, nil
}

func (s *gcsStorage) UploadDocument(ctx context.Context, r io.Reader, fileName string) (string, error) {
	key := fmt.Sprintf("resumes/%d-%s", time.Now().UnixMilli(), sanitizeFileName(fileName))

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", key, err)
	}

	return key, nil
}

func (s *gcsStorage) SignedURL(key string, expiry time.Duration) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(key, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(expiry),
	})
}

// sanitizeFileName strips path components and anything that would need
// escaping in an object key.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
