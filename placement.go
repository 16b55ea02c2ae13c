package watermark

import (
	"image"

	"golang.org/x/image/font"
)

// Placement captures where the watermark text lands for a given image.
type Placement struct {
	Corner Corner
	// Rect is the text bounding box in image coordinates. Its Min is the draw
	// origin.
	Rect image.Rectangle
}

// Origin returns the top-left corner of the text box.
func (p Placement) Origin() image.Point { return p.Rect.Min }

// Size returns the text box width and height.
func (p Placement) Size() image.Point { return p.Rect.Size() }

// Place computes the text rectangle for a text box of textSize anchored at
// corner, keeping Inset pixels from the adjacent edges. A box larger than the
// image produces a rectangle that extends past the top or left edge.
func Place(bounds image.Rectangle, corner Corner, textSize image.Point) Placement {
	x := bounds.Min.X + Inset
	y := bounds.Min.Y + Inset

	switch corner {
	case TopRight:
		x = bounds.Max.X - textSize.X - Inset
	case BottomLeft:
		y = bounds.Max.Y - textSize.Y - Inset
	case BottomRight:
		x = bounds.Max.X - textSize.X - Inset
		y = bounds.Max.Y - textSize.Y - Inset
	}

	return Placement{
		Corner: corner,
		Rect:   image.Rect(x, y, x+textSize.X, y+textSize.Y),
	}
}

// MeasureText returns the pixel bounds of text drawn with face when the dot is
// at the origin. Min may be negative (glyphs rise above the baseline). Empty
// text measures as the zero rectangle.
func MeasureText(face font.Face, text string) image.Rectangle {
	if text == "" {
		return image.Rectangle{}
	}
	b, _ := font.BoundString(face, text)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
}

// PlacementFor measures text with face and places it inside bounds.
func PlacementFor(bounds image.Rectangle, face font.Face, text string, corner Corner) Placement {
	return Place(bounds, corner, MeasureText(face, text).Size())
}
