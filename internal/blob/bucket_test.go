package blob

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bharat-abroad/internal/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestUpload(t *testing.T) {
	root := t.TempDir()
	b, err := NewBucket(root, SiteImages, "/uploads/")
	require.NoError(t, err)
	b.now = func() time.Time { return time.UnixMilli(1767225600000) }

	url, err := b.Upload(bytes.NewReader(pngBytes(t, 3000, 1500)))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^/uploads/site-images/1767225600000-[0-9a-f]{8}\.png$`), url)

	stored, err := os.ReadFile(filepath.Join(root, SiteImages, strings.TrimPrefix(url, "/uploads/site-images/")))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, cfg.Width)
	assert.Equal(t, 960, cfg.Height)
}

func TestUpload_Rejects(t *testing.T) {
	b, err := NewBucket(t.TempDir(), SiteImages, "/uploads")
	require.NoError(t, err)

	_, err = b.Upload(strings.NewReader("just text"))
	assert.ErrorIs(t, err, imaging.ErrUnsupportedFormat)

	_, err = b.Upload(bytes.NewReader(make([]byte, MaxUploadSize+1)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestNewBucket_InvalidName(t *testing.T) {
	for _, name := range []string{"", "..", "a/b", `a\b`} {
		_, err := NewBucket(t.TempDir(), name, "/uploads")
		assert.Error(t, err, name)
	}
}

func TestWrite_RejectsTraversal(t *testing.T) {
	b, err := NewBucket(t.TempDir(), SiteImages, "/uploads")
	require.NoError(t, err)
	assert.Error(t, b.write("../escape.png", []byte("x")))
	assert.NoError(t, b.write("ok.png", []byte("x")))
}
