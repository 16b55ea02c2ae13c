package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	watermark "github.com/gcslaoli/text-watermark-go"
	"github.com/gcslaoli/text-watermark-go/internal/config"
	"github.com/gcslaoli/text-watermark-go/internal/session"
)

// Severity classifies a notice shown below the preview.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Notice is a message for the user about the last command.
type Notice struct {
	Severity Severity
	Text     string
}

const helpText = `commands:
  open PATH       load a JPEG, PNG or BMP image
  text STRING     set the watermark text (empty allowed)
  size N          set the font size (10-200)
  corner NAME     top-left, top-right, bottom-left or bottom-right
  render          add the watermark
  save [PATH]     save the watermarked image (.png, .jpg, .bmp)
  help            show this help
  quit            exit`

// execute runs one command line against the session. quit reports whether the
// program should exit.
func execute(s *session.Session, cfg *config.Config, line string) (n Notice, quit bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return Notice{}, false
	case "quit", "exit", "q":
		return Notice{}, true
	case "help", "?":
		return Notice{Severity: SeverityInfo, Text: helpText}, false

	case "open":
		if arg == "" {
			return Notice{Severity: SeverityWarning, Text: "usage: open PATH"}, false
		}
		if err := s.Open(arg); err != nil {
			return Notice{Severity: SeverityError, Text: fmt.Sprintf("Error opening image: %v", err)}, false
		}
		img, format := s.Source()
		b := img.Bounds()
		return Notice{Severity: SeveritySuccess, Text: fmt.Sprintf("Image loaded (%s, %dx%d).", format, b.Dx(), b.Dy())}, false

	case "text":
		p := s.Params()
		p.Text = arg
		return setParams(s, p, fmt.Sprintf("Text set to %q.", arg)), false

	case "size":
		size, err := strconv.Atoi(arg)
		if err != nil {
			return Notice{Severity: SeverityWarning, Text: "usage: size N"}, false
		}
		p := s.Params()
		p.FontSize = size
		return setParams(s, p, fmt.Sprintf("Font size set to %d.", size)), false

	case "corner", "position":
		corner, err := watermark.ParseCorner(arg)
		if err != nil {
			return Notice{Severity: SeverityWarning, Text: err.Error()}, false
		}
		p := s.Params()
		p.Corner = corner
		return setParams(s, p, fmt.Sprintf("Corner set to %s.", corner)), false

	case "render", "add":
		err := s.Render()
		switch {
		case errors.Is(err, session.ErrNoImage):
			return Notice{Severity: SeverityWarning, Text: "Please load an image first."}, false
		case err != nil:
			return Notice{Severity: SeverityError, Text: err.Error()}, false
		}
		r := s.Result()
		msg := fmt.Sprintf("Watermark added at %v.", r.Placement.Origin())
		if r.FallbackFont {
			msg += " (bitmap font)"
		}
		if s.LowContrast() {
			return Notice{Severity: SeverityWarning, Text: msg + " The text is barely visible on this background."}, false
		}
		return Notice{Severity: SeveritySuccess, Text: msg}, false

	case "save":
		path := arg
		if path == "" {
			path = cfg.OutputPath(s.SourcePath())
		}
		written, err := s.Save(path)
		switch {
		case errors.Is(err, session.ErrNotRendered):
			return Notice{Severity: SeverityWarning, Text: "Please add a watermark before saving."}, false
		case err != nil:
			return Notice{Severity: SeverityError, Text: fmt.Sprintf("Failed to save image: %v", err)}, false
		}
		return Notice{Severity: SeveritySuccess, Text: "Image saved to " + written}, false
	}

	return Notice{Severity: SeverityWarning, Text: fmt.Sprintf("unknown command %q, type help", cmd)}, false
}

func setParams(s *session.Session, p watermark.Params, ok string) Notice {
	if err := s.SetParams(p); err != nil {
		return Notice{Severity: SeverityWarning, Text: err.Error()}
	}
	return Notice{Severity: SeverityInfo, Text: ok}
}
