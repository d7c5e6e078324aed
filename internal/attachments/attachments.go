// Package attachments stores the files tenants upload: Aadhar card scans
// and rent payment screenshots. A Store saves the bytes and returns the
// reference kept in the registration or payment record.
package attachments

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/google/uuid"
)

// DefaultMaxSize is the largest accepted attachment, 5 MB.
const DefaultMaxSize int64 = 5 * 1024 * 1024

// Kind groups attachments by what they prove.
type Kind string

const (
	KindAadhar  Kind = "aadhar"
	KindPayment Kind = "payments"
)

// allowedExtensions are the file types accepted for either kind.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Allowed reports whether filename has an accepted extension. The check is
// case-insensitive.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Store persists attachments.
type Store interface {
	// Save stores data under a fresh key and returns its reference.
	Save(ctx context.Context, kind Kind, filename string, data []byte) (string, error)
	// Link turns a reference returned by Save into something a user can open.
	Link(ctx context.Context, ref string) (string, error)
}

// Backends.
const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	MaxSize int64

	Dir string

	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PresignExpiry time.Duration
}

// New builds the Store named by cfg.Backend.
func New(cfg Config) (Store, error) {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}

	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Dir, cfg.MaxSize)
	case BackendS3:
		return NewS3Store(cfg), nil
	default:
		return nil, fmt.Errorf("unknown attachment backend %q", cfg.Backend)
	}
}

// CheckSize rejects data longer than limit.
func CheckSize(size, limit int64) error {
	if size > limit {
		return fmt.Errorf("%d bytes over %d byte limit: %w", size, limit, common.ErrFileTooLarge)
	}
	return nil
}

// objectKey lays attachments out as kind/yyyy/mm/dd/<uuid><ext>.
func objectKey(kind Kind, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s", kind, now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}
