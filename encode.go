package watermark

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality matches the quality most image tools use when none is
// given.
const DefaultJPEGQuality = 75

// ErrUnsupportedFormat is returned for output extensions other than PNG, JPEG
// and BMP.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// FormatFromPath picks the encoder for path by its extension.
func FormatFromPath(path string) (imaging.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imaging.PNG, nil
	case ".jpg", ".jpeg":
		return imaging.JPEG, nil
	case ".bmp":
		return imaging.BMP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Encode writes img to w in the given format. jpegQuality applies to JPEG
// only; values outside 1..100 fall back to DefaultJPEGQuality.
func Encode(w io.Writer, img image.Image, format imaging.Format, jpegQuality int) error {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// EncodePNG writes the provided image to the writer as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return Encode(w, img, imaging.PNG, DefaultJPEGQuality)
}
