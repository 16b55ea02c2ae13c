package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorInfo    = lipgloss.Color("#2196F3")
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#8a8f98")
)

// Styles groups the lipgloss styles used by the model.
type Styles struct {
	Title   lipgloss.Style
	Status  lipgloss.Style
	Muted   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Frame   lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		Status:  lipgloss.NewStyle().Foreground(colorMuted),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Info:    lipgloss.NewStyle().Foreground(colorInfo),
		Success: lipgloss.NewStyle().Foreground(colorSuccess),
		Warning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted),
	}
}
