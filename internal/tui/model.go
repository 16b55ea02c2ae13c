// Package tui implements the interactive watermarking session: a command line
// driving a session.Session, with an in-terminal preview of the image.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"

	"github.com/gcslaoli/text-watermark-go/internal/config"
	"github.com/gcslaoli/text-watermark-go/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// rows used by title, params, notice, input and frame
	chromeRows = 9
)

// Model is the bubbletea model for the interactive session.
type Model struct {
	session *session.Session
	cfg     *config.Config
	styles  Styles
	input   textinput.Model

	notice  Notice
	preview string

	width  int
	height int
}

// New creates a model around s.
func New(s *session.Session, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "open photo.jpg | text ... | size 36 | corner br | render | save out.png"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Focus()

	m := Model{
		session: s,
		cfg:     cfg,
		styles:  DefaultStyles(),
		input:   ti,
		notice:  Notice{Severity: SeverityInfo, Text: "Type help for commands."},
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.refreshPreview()
	return m
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(s *session.Session, cfg *config.Config) error {
	_, err := tea.NewProgram(New(s, cfg), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()

			notice, quit := execute(m.session, m.cfg, line)
			if quit {
				return m, tea.Quit
			}
			if notice.Text != "" {
				m.notice = notice
			}
			m.refreshPreview()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Watermark"))
	sb.WriteString(m.styles.Status.Render("  " + m.statusLine()))
	sb.WriteString("\n\n")

	if m.preview != "" {
		sb.WriteString(m.styles.Frame.Render(m.preview))
	} else {
		sb.WriteString(m.styles.Muted.Render("No image loaded."))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.renderNotice())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	return sb.String()
}

func (m Model) statusLine() string {
	p := m.session.Params()
	return fmt.Sprintf("[%s] text=%q size=%d corner=%s", m.session.State(), p.Text, p.FontSize, p.Corner)
}

func (m Model) renderNotice() string {
	switch m.notice.Severity {
	case SeveritySuccess:
		return m.styles.Success.Render(m.notice.Text)
	case SeverityWarning:
		return m.styles.Warning.Render(m.notice.Text)
	case SeverityError:
		return m.styles.Error.Render(m.notice.Text)
	}
	return m.styles.Info.Render(m.notice.Text)
}

// refreshPreview rescales the session preview to the space left in the
// terminal. Each cell holds two pixel rows.
func (m *Model) refreshPreview() {
	img := m.session.Preview()
	if img == nil {
		m.preview = ""
		return
	}

	cols := m.width - 2
	rows := m.height - chromeRows - strings.Count(m.notice.Text, "\n")
	if cols < 1 || rows < 1 {
		m.preview = ""
		return
	}

	// Terminal cells are roughly twice as tall as wide, which the half block
	// compensates for.
	m.preview = renderBlocks(imaging.Fit(img, cols, rows*2, imaging.Box))
}

// Notice returns the last notice, for callers embedding the model.
func (m Model) Notice() Notice { return m.notice }
