package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcslaoli/text-watermark-go/internal/config"
	"github.com/gcslaoli/text-watermark-go/internal/session"
)

func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	next, cmd := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestModelRendersPreviewAfterOpen(t *testing.T) {
	dir := t.TempDir()
	m := New(newSession(), config.Default())
	assert.Contains(t, m.View(), "No image loaded.")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = next.(Model)

	m, _ = typeLine(t, m, "open "+writePNG(t, dir, 120, 80))
	require.Equal(t, SeveritySuccess, m.Notice().Severity, m.Notice().Text)
	assert.NotEmpty(t, m.preview)
	assert.Contains(t, m.View(), "[loaded]")

	m, _ = typeLine(t, m, "render")
	assert.Contains(t, m.View(), "[rendered]")
	assert.Empty(t, m.input.Value())
}

func TestModelWarnsWithoutImage(t *testing.T) {
	m := New(newSession(), config.Default())

	m, _ = typeLine(t, m, "render")

	assert.Equal(t, SeverityWarning, m.Notice().Severity)
	assert.Equal(t, session.Empty, m.session.State())
}

func TestModelQuit(t *testing.T) {
	m := New(newSession(), config.Default())

	_, cmd := typeLine(t, m, "quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

}
