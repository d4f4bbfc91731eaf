// Package blob stores processed images in a named bucket under the uploads
// directory and hands back their public URLs.
package blob

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/bharat-abroad/internal/imaging"
)

// SiteImages is the bucket for content and portfolio images.
const SiteImages = "site-images"

// Limits applied to every upload.
const (
	MaxUploadSize = 10 << 20
	MaxDimension  = 1920
)

// ErrTooLarge is returned when an upload exceeds MaxUploadSize.
var ErrTooLarge = errors.New("image exceeds 10 MiB")

// Bucket writes files to <root>/<name> and serves them from <urlPrefix>/<name>.
type Bucket struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

// NewBucket creates the bucket directory if needed.
func NewBucket(root, name, urlPrefix string) (*Bucket, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid bucket name %q", name)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploads directory: %w", err)
	}
	dir := filepath.Join(absRoot, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory: %w", err)
	}

	return &Bucket{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/") + "/" + name,
		now:       time.Now,
	}, nil
}

// Upload processes the image read from r and stores it as
// <unix-millis>-<short-uuid>.<ext>. It returns the public URL.
func (b *Bucket) Upload(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return "", ErrTooLarge
	}

	img, err := imaging.Process(data, MaxDimension)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d-%s.%s", b.now().UnixMilli(), uuid.NewString()[:8], img.Ext)
	if err := b.write(name, img.Data); err != nil {
		return "", err
	}

	slog.Info("image uploaded", "bucket", filepath.Base(b.dir), "file", name,
		"width", img.Width, "height", img.Height, "bytes", len(img.Data))
	return b.urlPrefix + "/" + name, nil
}

// write saves data under name, refusing anything that escapes the bucket.
func (b *Bucket) write(name string, data []byte) error {
	safe := filepath.Base(name)
	if safe != name || safe == "." || safe == ".." {
		return fmt.Errorf("invalid filename %q", name)
	}

	target := filepath.Join(b.dir, safe)
	rel, err := filepath.Rel(b.dir, target)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("path traversal detected")
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
