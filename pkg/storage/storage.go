package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// BlobStore persists uploaded evidence files. Save returns the path the
// record should carry (relative for the local store, object key for S3).
type BlobStore interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

var whitespace = regexp.MustCompile(`\s+`)

// GenerateFilename builds a collision-resistant name for an uploaded file:
// unix-millis timestamp, a random suffix, and the sanitized original base name.
func GenerateFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	base = strings.ToLower(whitespace.ReplaceAllString(base, "_"))
	return fmt.Sprintf("%d-%d-%s%s", time.Now().UnixMilli(), rand.Intn(1_000_000), base, strings.ToLower(ext))
}
