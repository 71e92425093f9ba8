package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// MenuTheme contains the visual styles of the simulation picker.
type MenuTheme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	ItemID      lipgloss.Style
	PreviewBox  lipgloss.Style
	PreviewNote lipgloss.Style
	Error       lipgloss.Style

	renderer *lipgloss.Renderer
}

// DefaultMenuTheme returns the default theme bound to r. SSH sessions
// pass a renderer for their own PTY so colors match the client.
func DefaultMenuTheme(r *lipgloss.Renderer) MenuTheme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return MenuTheme{
		Title:       r.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle:    r.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  r.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2),
		ItemActive:  r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		ItemID:      r.NewStyle().Foreground(lipgloss.Color("240")),
		PreviewBox:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		PreviewNote: r.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		Error:       r.NewStyle().Foreground(lipgloss.Color("196")),

		renderer: r,
	}
}

// Renderer returns the renderer the theme was built with.
func (t MenuTheme) Renderer() *lipgloss.Renderer {
	return t.renderer
}
