package attachments

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/filex"
)

// FileStore keeps attachments in a local directory and references them by
// file:// URL.
type FileStore struct {
	dir     string
	maxSize int64
	now     func() time.Time
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string, maxSize int64) (*FileStore, error) {
	if dir == "" {
		dir = "attachments"
	}
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &FileStore{dir: abs, maxSize: maxSize, now: time.Now}, nil
}

func (s *FileStore) Save(ctx context.Context, kind Kind, filename string, data []byte) (string, error) {
	if err := CheckSize(int64(len(data)), s.maxSize); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(objectKey(kind, filename, s.now().UTC())))
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String(), nil
}

// Link returns local references unchanged.
func (s *FileStore) Link(_ context.Context, ref string) (string, error) {
	return ref, nil
}
