package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/vstratful/openrouter-launcher/internal/markdown"
)

// TermSink is a markdown.Sink that writes styled segments straight to a
// writer, for one-shot answers on stdout. Styling is dropped when the writer
// is not a terminal.
type TermSink struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	err      error
}

// NewTermSink creates a sink writing to w.
func NewTermSink(w io.Writer) *TermSink {
	r := lipgloss.NewRenderer(w)
	if !IsTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return &TermSink{w: w, renderer: r}
}

// Renderer returns the lipgloss renderer bound to the sink's writer.
func (s *TermSink) Renderer() *lipgloss.Renderer {
	return s.renderer
}

// AppendSegment implements markdown.Sink.
func (s *TermSink) AppendSegment(text string, style markdown.Style) {
	if text == "" {
		return
	}
	s.write(styleWith(s.renderer.NewStyle(), style).Render(text))
}

// AppendLineBreak implements markdown.Sink.
func (s *TermSink) AppendLineBreak() {
	s.write("\n")
}

// Err returns the first write error. Later writes are skipped once one fails.
func (s *TermSink) Err() error {
	return s.err
}

func (s *TermSink) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}
