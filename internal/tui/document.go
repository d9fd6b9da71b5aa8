package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/vstratful/openrouter-launcher/internal/config"
)

// Document renders a complete markdown answer with glamour. It serves
// non-streamed answers and stored history, where the whole text is known.
type Document struct {
	renderer *glamour.TermRenderer
	width    int
	dark     bool
}

// NewDocument creates a document renderer with the given wrap width.
// The style is fixed rather than detected, since detection queries the
// terminal and can interfere with Bubble Tea's input handling.
func NewDocument(width int, dark bool) (*Document, error) {
	if width <= 0 {
		width = config.DefaultTerminalWidth
	}
	r, err := newGlamour(width, dark)
	if err != nil {
		return nil, err
	}
	return &Document{renderer: r, width: width, dark: dark}, nil
}

func newGlamour(width int, dark bool) (*glamour.TermRenderer, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	return glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
}

// SetWidth updates the word wrap width by creating a new renderer.
func (d *Document) SetWidth(width int) error {
	if width <= 0 {
		width = config.DefaultTerminalWidth
	}
	if width == d.width {
		return nil
	}
	r, err := newGlamour(width, d.dark)
	if err != nil {
		return err
	}
	d.renderer = r
	d.width = width
	return nil
}

// Width returns the current wrap width.
func (d *Document) Width() int {
	return d.width
}

// Render renders markdown content, trimming the trailing blank lines glamour
// adds.
func (d *Document) Render(content string) (string, error) {
	out, err := d.renderer.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
