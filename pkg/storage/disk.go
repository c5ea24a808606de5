package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix is where the router serves disk-stored images from.
const PublicPrefix = "/uploads"

type diskStorage struct {
	dir string
}

// NewDiskStorage stores images under dir and hands back /uploads/... paths.
func NewDiskStorage(dir string) (ImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &diskStorage{dir: dir}, nil
}

func (s *diskStorage) UploadImage(ctx context.Context, r io.Reader, fileName string) (string, error) {
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(fileName))

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return PublicPrefix + "/" + name, nil
}
