package watermark

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func goRegular() FontProvider {
	return BytesFont("goregular.ttf", goregular.TTF)
}

func testEngine() *Engine {
	return NewEngine(WithFonts(goRegular()))
}

func goRegularFace(t *testing.T, size int) font.Face {
	t.Helper()
	face, err := goRegular().Face(size)
	if err != nil {
		t.Fatalf("goregular face: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	return face
}

// gradient returns an opaque image whose pixels all differ from white.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 200), G: uint8(y % 200), B: uint8((x + y) % 200), A: 255})
		}
	}
	return img
}

func imagesEqual(a, b image.Image) bool {
	if !a.Bounds().Eq(b.Bounds()) {
		return false
	}

	ab := imageToNRGBA(a)
	bb := imageToNRGBA(b)

	return bytes.Equal(ab.Pix, bb.Pix)
}

func imageToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}
