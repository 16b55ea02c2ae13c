// Package session holds the state of one interactive watermarking session: the
// opened source image, the current watermark parameters and the last rendered
// result.
package session

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	watermark "github.com/gcslaoli/text-watermark-go"
)

// Preview bounds. Previews are downscaled to fit, never enlarged.
const (
	PreviewWidth  = 600
	PreviewHeight = 400
)

var (
	// ErrNoImage is returned when rendering before an image was opened.
	ErrNoImage = errors.New("no image loaded")
	// ErrNotRendered is returned when saving before a watermark was added.
	ErrNotRendered = errors.New("no watermarked image to save")
)

// State is the session lifecycle stage.
type State int

const (
	Empty State = iota
	Loaded
	Rendered
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	case Rendered:
		return "rendered"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Renderer produces a watermarked result. *watermark.Engine implements it.
type Renderer interface {
	Render(img image.Image, p watermark.Params) (*watermark.Result, error)
}

// Session is not safe for concurrent use; every operation runs to completion
// before the next one starts.
type Session struct {
	renderer    Renderer
	logger      *zap.Logger
	jpegQuality int

	params watermark.Params

	source     image.Image
	format     string
	sourcePath string

	result *watermark.Result
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithJPEGQuality sets the quality used when saving JPEG files.
func WithJPEGQuality(q int) Option {
	return func(s *Session) { s.jpegQuality = q }
}

// WithParams sets the initial watermark parameters.
func WithParams(p watermark.Params) Option {
	return func(s *Session) { s.params = p }
}

// New creates an empty session rendering through r.
func New(r Renderer, opts ...Option) *Session {
	s := &Session{
		renderer:    r,
		logger:      zap.NewNop(),
		jpegQuality: watermark.DefaultJPEGQuality,
		params:      watermark.DefaultParams(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports the lifecycle stage.
func (s *Session) State() State {
	switch {
	case s.result != nil:
		return Rendered
	case s.source != nil:
		return Loaded
	}
	return Empty
}

// Params returns the current watermark parameters.
func (s *Session) Params() watermark.Params { return s.params }

// SetParams replaces the current parameters after validating them. The
// existing result is kept until the next Render.
func (s *Session) SetParams(p watermark.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

// Source returns the opened image and its format, or nil when empty.
func (s *Session) Source() (image.Image, string) { return s.source, s.format }

// SourcePath returns the path of the opened file, if it came from disk.
func (s *Session) SourcePath() string { return s.sourcePath }

// Result returns the last rendered result, or nil.
func (s *Session) Result() *watermark.Result { return s.result }

// Open decodes the file at path and makes it the session source. On failure
// the session is left unchanged.
func (s *Session) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := watermark.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	s.Load(img, format)
	s.sourcePath = path
	return nil
}

// Load replaces the source with an already decoded image and discards any
// previous result.
func (s *Session) Load(img image.Image, format string) {
	s.source = img
	s.format = format
	s.sourcePath = ""
	s.result = nil

	b := img.Bounds()
	s.logger.Info("image loaded",
		zap.String("format", format), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
}

// Render composites the current parameters over the source image. The result
// always derives from the source, never from a previous result.
func (s *Session) Render() error {
	if s.source == nil {
		s.logger.Warn("render requested without an image")
		return ErrNoImage
	}

	res, err := s.renderer.Render(s.source, s.params)
	if err != nil {
		return fmt.Errorf("render watermark: %w", err)
	}

	s.result = res
	s.logger.Info("watermark added",
		zap.String("text", s.params.Text),
		zap.Int("font_size", s.params.FontSize),
		zap.Stringer("corner", s.params.Corner),
		zap.Stringer("rect", res.Placement.Rect),
		zap.String("font", res.Font))
	if s.LowContrast() {
		s.logger.Warn("watermark has low contrast against the image", zap.Stringer("rect", res.Placement.Rect))
	}
	return nil
}

// LowContrast reports whether the current result's text is likely hard to
// see over the source.
func (s *Session) LowContrast() bool {
	return s.result != nil && watermark.LowContrast(s.source, s.result)
}

// Save writes the full-resolution result to path, choosing the encoder from
// the extension. A path without extension gets ".png". It returns the path
// actually written. On failure the result is kept so the save can be retried.
func (s *Session) Save(path string) (string, error) {
	if s.result == nil {
		s.logger.Warn("save requested before rendering")
		return "", ErrNotRendered
	}

	if filepath.Ext(path) == "" {
		path += ".png"
	}
	format, err := watermark.FormatFromPath(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}

	if err := watermark.Encode(f, s.result.Image, format, s.jpegQuality); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close output: %w", err)
	}

	s.logger.Info("image saved", zap.String("path", path), zap.Stringer("format", format))
	return path, nil
}

// Preview returns the image to display: the result when rendered, otherwise
// the source, downscaled to fit PreviewWidth x PreviewHeight. It returns nil
// for an empty session. The preview is a separate copy and is never saved.
func (s *Session) Preview() image.Image {
	return s.PreviewFit(PreviewWidth, PreviewHeight)
}

// PreviewFit is Preview with custom bounds.
func (s *Session) PreviewFit(maxWidth, maxHeight int) image.Image {
	var img image.Image
	switch {
	case s.result != nil:
		img = s.result.Image
	case s.source != nil:
		img = s.source
	default:
		return nil
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}
