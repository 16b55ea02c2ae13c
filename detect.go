package watermark

import (
	"image"
)

const (
	// LowContrastThreshold is the mean luma gain below which the watermark is
	// hard to see. White text at OverlayAlpha over an already bright region
	// barely changes it.
	LowContrastThreshold = 6.0
)

// Contrast estimates how visible white watermark text would be over region of
// img: the mean luma increase, in [0, 255], that a fully covered pixel gains
// from the overlay. Regions outside img are ignored; an empty region scores 0.
func Contrast(img image.Image, region image.Rectangle) float64 {
	mean, count := meanLuma(img, region.Intersect(img.Bounds()))
	if count == 0 {
		return 0
	}
	return (255 - mean) * OverlayAlpha / 255
}

// LowContrast reports whether the text in res is likely hard to see when
// drawn over src.
func LowContrast(src image.Image, res *Result) bool {
	if res == nil || res.Placement.Rect.Empty() {
		return false
	}
	return Contrast(src, res.Placement.Rect) < LowContrastThreshold
}

// meanLuma computes the average luma for pixels in region.
func meanLuma(img image.Image, region image.Rectangle) (float64, int) {
	var sum float64
	var count int

	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Convert to luma in [0, 255].
			luma := 0.2126*float64(r)/257.0 + 0.7152*float64(g)/257.0 + 0.0722*float64(b)/257.0
			sum += luma
			count++
		}
	}

	if count == 0 {
		return 0, 0
	}

	return sum / float64(count), count
}
