package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/vstratful/openrouter-launcher/internal/markdown"
)

type span struct {
	text  string
	style markdown.Style
}

// Surface is a markdown.Sink that keeps styled lines for a viewport. Lines
// before the last line break never change, so their wrapped rendering is
// cached per width.
type Surface struct {
	renderer *lipgloss.Renderer
	lines    [][]span

	cacheWidth int
	cache      []string
}

// NewSurface creates an empty surface. A nil renderer uses lipgloss's default.
func NewSurface(r *lipgloss.Renderer) *Surface {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Surface{renderer: r, lines: [][]span{nil}}
}

// AppendSegment implements markdown.Sink.
func (s *Surface) AppendSegment(text string, style markdown.Style) {
	if text == "" {
		return
	}
	last := len(s.lines) - 1
	s.lines[last] = append(s.lines[last], span{text: text, style: style})
}

// AppendLineBreak implements markdown.Sink.
func (s *Surface) AppendLineBreak() {
	s.lines = append(s.lines, nil)
}

// Reset discards all content.
func (s *Surface) Reset() {
	s.lines = [][]span{nil}
	s.cache = s.cache[:0]
}

// Empty reports whether nothing has been appended since the last Reset.
func (s *Surface) Empty() bool {
	return len(s.lines) == 1 && len(s.lines[0]) == 0
}

// Text returns the displayed text without styling.
func (s *Surface) Text() string {
	var b strings.Builder
	for i, line := range s.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, sp := range line {
			b.WriteString(sp.text)
		}
	}
	return b.String()
}

// View renders the surface wrapped to width, with tail drawn after the last
// line in tailStyle. The tail is not stored. width <= 0 disables wrapping.
func (s *Surface) View(width int, tail string, tailStyle markdown.Style) string {
	if width != s.cacheWidth {
		s.cache = s.cache[:0]
		s.cacheWidth = width
	}

	closed := len(s.lines) - 1
	for i := len(s.cache); i < closed; i++ {
		s.cache = append(s.cache, s.renderLine(s.lines[i], width))
	}

	open := s.lines[closed]
	if tail != "" {
		open = append(open[:len(open):len(open)], span{text: tail, style: tailStyle})
	}

	out := make([]string, 0, len(s.lines))
	out = append(out, s.cache...)
	out = append(out, s.renderLine(open, width))
	return strings.Join(out, "\n")
}

func (s *Surface) renderLine(spans []span, width int) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(styleWith(s.renderer.NewStyle(), sp.style).Render(sp.text))
	}
	line := b.String()
	if width > 0 {
		line = wrap.String(wordwrap.String(line, width), width)
	}
	return line
}
