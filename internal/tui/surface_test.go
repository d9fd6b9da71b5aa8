package tui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/vstratful/openrouter-launcher/internal/markdown"
)

// plainRenderer drops all styling so views compare as text.
func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.Ascii)
	return r
}

func TestSurface_AsRendererSink(t *testing.T) {
	s := NewSurface(plainRenderer())
	r := markdown.New(s)
	r.Append("# Title\n- **one**\n- two")
	r.Flush()

	want := "Title\n• one\n• two"
	if got := s.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := s.View(0, "", markdown.Style{}); got != want {
		t.Errorf("View() = %q, want %q", got, want)
	}
}

func TestSurface_Tail(t *testing.T) {
	s := NewSurface(plainRenderer())
	r := markdown.New(s)
	r.Append("done\n**stre")

	text, style := r.Pending()
	if got := s.View(0, text, style); got != "done\nstre" {
		t.Errorf("View() = %q, want %q", got, "done\nstre")
	}
	if got := s.Text(); got != "done\n" {
		t.Errorf("tail must not be stored, Text() = %q", got)
	}

	// Rendering the tail twice must not leak it into the line.
	s.View(0, text, style)
	if got := s.View(0, "", style); got != "done\n" {
		t.Errorf("View() without tail = %q, want %q", got, "done\n")
	}
}

func TestSurface_Wrap(t *testing.T) {
	s := NewSurface(plainRenderer())
	s.AppendSegment("hello world", markdown.Style{})

	if got := s.View(5, "", markdown.Style{}); got != "hello\nworld" {
		t.Errorf("View(5) = %q, want %q", got, "hello\nworld")
	}
	if got := s.View(20, "", markdown.Style{}); got != "hello world" {
		t.Errorf("View(20) = %q, want %q", got, "hello world")
	}
}

func TestSurface_CacheTracksNewLines(t *testing.T) {
	s := NewSurface(plainRenderer())
	s.AppendSegment("a", markdown.Style{})
	s.AppendLineBreak()
	if got := s.View(10, "", markdown.Style{}); got != "a\n" {
		t.Errorf("View() = %q, want %q", got, "a\n")
	}

	s.AppendSegment("b", markdown.Style{})
	s.AppendLineBreak()
	s.AppendSegment("c", markdown.Style{})
	if got := s.View(10, "", markdown.Style{}); got != "a\nb\nc" {
		t.Errorf("View() = %q, want %q", got, "a\nb\nc")
	}
}

func TestSurface_Reset(t *testing.T) {
	s := NewSurface(plainRenderer())
	if !s.Empty() {
		t.Error("new surface should be empty")
	}
	s.AppendSegment("x", markdown.Style{})
	s.AppendLineBreak()
	s.View(10, "", markdown.Style{})
	if s.Empty() {
		t.Error("surface with content should not be empty")
	}

	s.Reset()
	if !s.Empty() {
		t.Error("surface should be empty after Reset")
	}
	if got := s.View(10, "", markdown.Style{}); got != "" {
		t.Errorf("View() after Reset = %q, want empty", got)
	}
}

func TestSurface_IgnoresEmptySegments(t *testing.T) {
	s := NewSurface(plainRenderer())
	s.AppendSegment("", markdown.Style{Bold: true})
	if !s.Empty() {
		t.Error("empty segment should not be stored")
	}
}
