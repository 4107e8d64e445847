package player

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("player: unsupported snapshot format")

// Encoder writes snapshots, picking the image format from the file extension.
type Encoder struct {
	quality int
}

// NewEncoder creates an encoder; quality (1-100) only applies to JPEG.
func NewEncoder(quality int) *Encoder {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	return &Encoder{quality: quality}
}

func (e *Encoder) Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: e.quality})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// EncodeFile writes img to dest. A partially written file is removed.
func (e *Encoder) EncodeFile(img image.Image, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	if err := e.Encode(f, img, filepath.Ext(dest)); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}
