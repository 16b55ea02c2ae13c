package watermark

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontProvider produces a font face at a requested pixel size.
type FontProvider interface {
	Name() string
	Face(size int) (font.Face, error)
}

// FontChain is an ordered list of providers. The first provider that returns a
// face wins. The last element is always the built-in bitmap font.
type FontChain []FontProvider

// NewFontChain builds a chain from providers and appends the bitmap fallback
// if the list does not already end with it.
func NewFontChain(providers ...FontProvider) FontChain {
	chain := make(FontChain, 0, len(providers)+1)
	for _, p := range providers {
		if p != nil {
			chain = append(chain, p)
		}
	}
	if len(chain) == 0 || !isBitmap(chain[len(chain)-1]) {
		chain = append(chain, BitmapFont())
	}
	return chain
}

// SystemFontChain tries the platform font files returned by SystemFontPaths.
func SystemFontChain() FontChain {
	paths := SystemFontPaths()
	providers := make([]FontProvider, 0, len(paths))
	for _, path := range paths {
		providers = append(providers, FileFont(path))
	}
	return NewFontChain(providers...)
}

// Resolve returns the first face the chain can produce at size, the name of
// the provider that produced it, and whether the bitmap fallback was used.
// errs collects the failures of the providers that were skipped.
func (c FontChain) Resolve(size int) (face font.Face, name string, fallback bool, errs []error) {
	for _, p := range c {
		f, err := p.Face(size)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return f, p.Name(), isBitmap(p), errs
	}

	// Only reachable for a chain not built by NewFontChain.
	fb := BitmapFont()
	f, _ := fb.Face(size)
	return f, fb.Name(), true, errs
}

// SystemFontPaths lists the font files tried before falling back to the
// bitmap font.
func SystemFontPaths() []string {
	var paths []string
	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"/System/Library/Fonts/Helvetica.ttc",
		)
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		paths = append(paths, filepath.Join(windir, "Fonts", "arial.ttf"))
	default:
		paths = append(paths,
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		)
	}
	return append(paths, "arial.ttf")
}

type bitmapFont struct{}

// BitmapFont returns the built-in 7x13 bitmap face. It ignores the requested
// size and never fails.
func BitmapFont() FontProvider { return bitmapFont{} }

func (bitmapFont) Name() string { return "basicfont-7x13" }

func (bitmapFont) Face(int) (font.Face, error) { return basicfont.Face7x13, nil }

func isBitmap(p FontProvider) bool {
	_, ok := p.(bitmapFont)
	return ok
}

// sfntProvider parses its font data once and builds faces on demand.
type sfntProvider struct {
	name string
	load func() ([]byte, error)

	once sync.Once
	font *sfnt.Font
	err  error
}

// FileFont loads an OpenType/TrueType font or collection from path. The file
// is read and parsed on first use and cached afterwards.
func FileFont(path string) FontProvider {
	return &sfntProvider{
		name: path,
		load: func() ([]byte, error) { return os.ReadFile(path) },
	}
}

// BytesFont serves faces from in-memory font data.
func BytesFont(name string, data []byte) FontProvider {
	return &sfntProvider{
		name: name,
		load: func() ([]byte, error) { return data, nil },
	}
}

func (p *sfntProvider) Name() string { return p.name }

func (p *sfntProvider) Face(size int) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %d", size)
	}

	p.once.Do(func() {
		p.font, p.err = p.parse()
	})
	if p.err != nil {
		return nil, p.err
	}

	face, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

func (p *sfntProvider) parse() (*sfnt.Font, error) {
	data, err := p.load()
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(p.name))
	if ext == ".ttc" || ext == ".otc" {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse font collection: %w", err)
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("empty font collection")
		}
		return coll.Font(0)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}
