package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vstratful/openrouter-launcher/internal/markdown"
)

// ToLipgloss converts a resolved markdown style using the default renderer.
func ToLipgloss(s markdown.Style) lipgloss.Style {
	return styleWith(lipgloss.NewStyle(), s)
}

// styleWith applies s on top of base, which carries the target renderer.
// Monospace needs no attribute: terminal cells are fixed width.
func styleWith(base lipgloss.Style, s markdown.Style) lipgloss.Style {
	st := base.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	if s.Color != "" {
		st = st.Foreground(lipgloss.Color(s.Color))
	}
	return st
}
