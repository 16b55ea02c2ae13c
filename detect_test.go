package watermark

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
)

func uniform(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestContrast(t *testing.T) {
	cases := []struct {
		name string
		c    color.Color
		want float64
	}{
		{name: "black", c: color.Black, want: OverlayAlpha},
		{name: "white", c: color.White, want: 0},
		{name: "mid grey", c: color.Gray{Y: 128}, want: (255 - 128) * OverlayAlpha / 255.0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Contrast(uniform(100, 50, tc.c), image.Rect(10, 10, 60, 30))
			if math.Abs(got-tc.want) > 0.01 {
				t.Fatalf("Contrast = %.3f, want %.3f", got, tc.want)
			}
		})
	}

	if got := Contrast(uniform(10, 10, color.Black), image.Rect(50, 50, 60, 60)); got != 0 {
		t.Fatalf("region outside image scored %.2f", got)
	}
}

func TestLowContrast(t *testing.T) {
	eng := testEngine()
	p := Params{Text: "WATERMARK", FontSize: 24, Corner: BottomRight}

	white := uniform(300, 120, color.White)
	res, err := eng.Render(white, p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !LowContrast(white, res) {
		t.Fatalf("white background should be low contrast")
	}

	dark := uniform(300, 120, color.Gray{Y: 30})
	res, err = eng.Render(dark, p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if LowContrast(dark, res) {
		t.Fatalf("dark background should not be low contrast")
	}

	if LowContrast(dark, nil) {
		t.Fatalf("nil result reported low contrast")
	}
}
