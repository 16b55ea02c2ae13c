package watermark

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Result is a rendered, full-resolution watermarked image.
type Result struct {
	// Image is opaque: every alpha value is 255.
	Image     *image.RGBA
	Placement Placement
	// Font names the provider that served the face.
	Font         string
	FallbackFont bool
}

// Engine composites text watermarks using a font provider chain.
type Engine struct {
	fonts  FontChain
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFonts replaces the font providers. The bitmap fallback is appended when
// missing.
func WithFonts(providers ...FontProvider) Option {
	return func(e *Engine) {
		e.fonts = NewFontChain(providers...)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine constructs an Engine. Without options it uses SystemFontChain.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.fonts == nil {
		e.fonts = SystemFontChain()
	}
	return e
}

var defaultEngine struct {
	once sync.Once
	eng  *Engine
}

// Render applies the default engine to the provided image.
func Render(img image.Image, p Params) (*Result, error) {
	defaultEngine.once.Do(func() {
		defaultEngine.eng = NewEngine()
	})

	return defaultEngine.eng.Render(img, p)
}

// Fonts returns the engine's provider chain.
func (e *Engine) Fonts() FontChain { return e.fonts }

// Render draws p.Text at the chosen corner over a copy of img and returns the
// flattened result. img is not modified.
func (e *Engine) Render(img image.Image, p Params) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image provided")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	face, name, fallback, errs := e.fonts.Resolve(p.FontSize)
	defer face.Close()
	if fallback {
		e.logger.Debug("no scalable font found, using bitmap font",
			zap.Int("font_size", p.FontSize), zap.Errors("attempts", errs))
	}

	base := cloneToNRGBA(img)
	overlay := image.NewNRGBA(base.Bounds())

	glyphs := MeasureText(face, p.Text)
	placement := Place(base.Bounds(), p.Corner, glyphs.Size())
	if !placement.Rect.In(base.Bounds()) {
		e.logger.Debug("watermark text exceeds image bounds",
			zap.Stringer("rect", placement.Rect), zap.Stringer("bounds", base.Bounds()))
	}

	drawText(overlay, face, p.Text, placement.Origin().Sub(glyphs.Min))
	compositeOver(base, overlay)

	return &Result{
		Image:        flatten(base),
		Placement:    placement,
		Font:         name,
		FallbackFont: fallback,
	}, nil
}

// PlacementFor reports where p.Text would land on an image of the given size
// without rendering it.
func (e *Engine) PlacementFor(width, height int, p Params) (Placement, error) {
	if err := p.Validate(); err != nil {
		return Placement{}, err
	}
	face, _, _, _ := e.fonts.Resolve(p.FontSize)
	defer face.Close()
	return PlacementFor(image.Rect(0, 0, width, height), face, p.Text, p.Corner), nil
}

// cloneToNRGBA copies the image into a mutable non-premultiplied buffer,
// adding an opaque alpha channel when the source has none.
func cloneToNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)

	// draw.Draw goes through premultiplied color and would zero the RGB of
	// fully transparent pixels, so copy NRGBA rows directly.
	if n, ok := src.(*image.NRGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):dst.PixOffset(bounds.Max.X, y)],
				n.Pix[n.PixOffset(bounds.Min.X, y):n.PixOffset(bounds.Max.X, y)])
		}
		return dst
	}

	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// drawText renders text in white at OverlayAlpha with its baseline dot at dot.
func drawText(dst *image.NRGBA, face font.Face, text string, dot image.Point) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: OverlayAlpha}),
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(text)
}

// compositeOver blends overlay onto base in place using the "over" operator on
// non-premultiplied values. Pixels with zero overlay alpha are left untouched.
func compositeOver(base, overlay *image.NRGBA) {
	bounds := base.Bounds().Intersect(overlay.Bounds())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			so := overlay.PixOffset(x, y)
			srcA := uint32(overlay.Pix[so+3])
			if srcA == 0 {
				continue
			}

			bo := base.PixOffset(x, y)
			dstA := uint32(base.Pix[bo+3])

			// Alpha values scaled to [0, 255*255].
			outA := srcA*255 + dstA*(255-srcA)
			if outA == 0 {
				continue
			}

			for c := 0; c < 3; c++ {
				s := uint32(overlay.Pix[so+c])
				d := uint32(base.Pix[bo+c])
				v := (s*srcA*255 + d*dstA*(255-srcA) + outA/2) / outA
				base.Pix[bo+c] = uint8(v)
			}
			base.Pix[bo+3] = uint8((outA + 127) / 255)
		}
	}
}

// flatten drops the alpha channel, producing an opaque RGB image.
func flatten(src *image.NRGBA) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		si := src.PixOffset(bounds.Min.X, y)
		di := dst.PixOffset(bounds.Min.X, y)
		for x := 0; x < bounds.Dx(); x++ {
			dst.Pix[di+0] = src.Pix[si+0]
			dst.Pix[di+1] = src.Pix[si+1]
			dst.Pix[di+2] = src.Pix[si+2]
			dst.Pix[di+3] = 0xff
			si += 4
			di += 4
		}
	}

	return dst
}
