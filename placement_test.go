package watermark

import (
	"image"
	"testing"
)

func TestPlaceCorners(t *testing.T) {
	bounds := image.Rect(0, 0, 800, 600)
	text := image.Pt(120, 30)

	cases := []struct {
		corner Corner
		want   image.Point
	}{
		{TopLeft, image.Pt(10, 10)},
		{TopRight, image.Pt(800-120-10, 10)},
		{BottomLeft, image.Pt(10, 600-30-10)},
		{BottomRight, image.Pt(800-120-10, 600-30-10)},
	}

	for _, tc := range cases {
		p := Place(bounds, tc.corner, text)
		if p.Origin() != tc.want {
			t.Fatalf("%v: origin %v, want %v", tc.corner, p.Origin(), tc.want)
		}
		if p.Size() != text {
			t.Fatalf("%v: size %v, want %v", tc.corner, p.Size(), text)
		}
	}
}

// The text box must stay within the inset frame whenever the image is at
// least the text size plus twice the inset.
func TestPlaceStaysInsideInset(t *testing.T) {
	texts := []image.Point{{1, 1}, {62, 13}, {200, 48}, {0, 0}}

	for _, text := range texts {
		for _, extra := range []image.Point{{0, 0}, {1, 7}, {300, 5}, {17, 400}} {
			w := text.X + 2*Inset + extra.X
			h := text.Y + 2*Inset + extra.Y
			bounds := image.Rect(0, 0, w, h)
			frame := bounds.Inset(Inset)

			for c := TopLeft; c <= BottomRight; c++ {
				p := Place(bounds, c, text)
				if !p.Rect.Empty() && !p.Rect.In(frame) {
					t.Fatalf("%v text %v image %dx%d: rect %v outside %v", c, text, w, h, p.Rect, frame)
				}
				if p.Origin().X < Inset || p.Origin().Y < Inset {
					t.Fatalf("%v text %v image %dx%d: origin %v inside inset", c, text, w, h, p.Origin())
				}
			}
		}
	}
}

func TestPlaceOversizedTextGoesNegative(t *testing.T) {
	p := Place(image.Rect(0, 0, 50, 20), BottomRight, image.Pt(100, 40))
	if p.Origin() != image.Pt(50-100-10, 20-40-10) {
		t.Fatalf("unexpected origin %v", p.Origin())
	}
}

func TestMeasureText(t *testing.T) {
	face := goRegularFace(t, 36)

	if r := MeasureText(face, ""); r != (image.Rectangle{}) {
		t.Fatalf("empty text measured as %v", r)
	}

	r := MeasureText(face, "WATERMARK")
	if r.Dx() <= 0 || r.Dy() <= 0 {
		t.Fatalf("expected positive box, got %v", r)
	}
	if r.Min.Y >= 0 {
		t.Fatalf("capital letters should rise above the baseline, got %v", r)
	}

	wider := MeasureText(goRegularFace(t, 72), "WATERMARK")
	if wider.Dx() <= r.Dx() {
		t.Fatalf("72px text (%d) not wider than 36px text (%d)", wider.Dx(), r.Dx())
	}
}
