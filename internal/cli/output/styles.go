package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/meshx-labs/meshx/internal/emphasis"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	renderer *lipgloss.Renderer

	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	NodeID  lipgloss.Style
}

// NewStyles builds the styles on lr.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	fg := func(e emphasis.Emphasis) lipgloss.Style {
		return lr.NewStyle().Foreground(lipgloss.Color(e.Color()))
	}
	return &Styles{
		renderer: lr,
		Header1:  fg(emphasis.Accent).Bold(true).Underline(true),
		Header2:  fg(emphasis.Accent).Bold(true),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    fg(emphasis.Muted),
		Success:  fg(emphasis.Success),
		Warning:  fg(emphasis.Warning),
		Error:    fg(emphasis.Danger),
		Info:     fg(emphasis.Neutral),
		NodeID:   fg(emphasis.Accent),
	}
}

// Emphasis returns the foreground style of e.
func (s *Styles) Emphasis(e emphasis.Emphasis) lipgloss.Style {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(e.Color()))
}
