package watermark

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Inset is the distance in pixels between the text box and the image edges.
	Inset = 10
	// OverlayAlpha is the opacity of the watermark text (70/255, about 27%).
	OverlayAlpha = 70

	MinFontSize = 10
	MaxFontSize = 200

	DefaultText     = "WATERMARK"
	DefaultFontSize = 36
)

// ErrInvalidParams is returned when watermark parameters fail validation.
var ErrInvalidParams = errors.New("invalid watermark parameters")

// Corner selects the image corner the watermark is anchored to.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

var cornerNames = [...]string{
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

func (c Corner) String() string {
	if c < TopLeft || c > BottomRight {
		return fmt.Sprintf("Corner(%d)", int(c))
	}
	return cornerNames[c]
}

// Valid reports whether c is one of the four corners.
func (c Corner) Valid() bool {
	return c >= TopLeft && c <= BottomRight
}

// ParseCorner accepts "bottom-right", "Bottom Right", "bottom_right" or the
// short forms "tl", "tr", "bl", "br".
func ParseCorner(s string) (Corner, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)

	switch norm {
	case "top-left", "topleft", "tl":
		return TopLeft, nil
	case "top-right", "topright", "tr":
		return TopRight, nil
	case "bottom-left", "bottomleft", "bl":
		return BottomLeft, nil
	case "bottom-right", "bottomright", "br":
		return BottomRight, nil
	}
	return 0, fmt.Errorf("%w: unknown corner %q", ErrInvalidParams, s)
}

// MarshalText implements encoding.TextMarshaler so corners read naturally in
// config files.
func (c Corner) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: corner %d", ErrInvalidParams, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Corner) UnmarshalText(text []byte) error {
	parsed, err := ParseCorner(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Params are the user-chosen watermark settings. They are re-read on every
// render.
type Params struct {
	Text     string
	FontSize int
	Corner   Corner
}

// DefaultParams returns the settings a fresh session starts with.
func DefaultParams() Params {
	return Params{
		Text:     DefaultText,
		FontSize: DefaultFontSize,
		Corner:   BottomRight,
	}
}

// Validate checks the font size range and corner. Empty text is allowed.
func (p Params) Validate() error {
	if p.FontSize < MinFontSize || p.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font size %d outside [%d, %d]", ErrInvalidParams, p.FontSize, MinFontSize, MaxFontSize)
	}
	if !p.Corner.Valid() {
		return fmt.Errorf("%w: corner %d", ErrInvalidParams, int(p.Corner))
	}
	return nil
}
