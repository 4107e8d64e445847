package player

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderFormats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	enc := NewEncoder(80)

	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, img, ".PNG"))
	_, err := png.Decode(&buf)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, enc.Encode(&buf, img, ".jpg"))
	_, err = jpeg.Decode(&buf)
	require.NoError(t, err)

	buf.Reset()
	assert.ErrorIs(t, enc.Encode(&buf, img, ".bmp"), ErrUnsupportedFormat)
}

func TestEncodeFileRemovesPartialFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "Capture_1.gif")

	err := NewEncoder(80).EncodeFile(image.NewRGBA(image.Rect(0, 0, 2, 2)), dest)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEncodeFileMissingDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "Capture_1.png")
	assert.Error(t, NewEncoder(80).EncodeFile(image.NewRGBA(image.Rect(0, 0, 2, 2)), dest))
}

func TestAddSearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATH", "/usr/bin")

	require.NoError(t, AddSearchPath(dir))
	require.NoError(t, AddSearchPath(dir))

	entries := filepath.SplitList(os.Getenv("PATH"))
	assert.Equal(t, []string{filepath.Clean(dir), "/usr/bin"}, entries)
}
