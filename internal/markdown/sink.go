package markdown

import "strings"

// Sink receives rendered output. Both operations are append-only.
type Sink interface {
	AppendSegment(text string, style Style)
	AppendLineBreak()
}

// EventKind distinguishes recorded sink calls.
type EventKind int

const (
	SegmentEvent EventKind = iota
	LineBreakEvent
)

// Event is one recorded sink call.
type Event struct {
	Kind  EventKind
	Text  string
	Style Style
}

// Recorder is a Sink that keeps every call in memory.
type Recorder struct {
	events []Event
}

// AppendSegment implements Sink.
func (r *Recorder) AppendSegment(text string, style Style) {
	r.events = append(r.events, Event{Kind: SegmentEvent, Text: text, Style: style})
}

// AppendLineBreak implements Sink.
func (r *Recorder) AppendLineBreak() {
	r.events = append(r.events, Event{Kind: LineBreakEvent})
}

// Events returns the recorded calls in order.
func (r *Recorder) Events() []Event {
	return r.events
}

// Segments returns only the recorded segments.
func (r *Recorder) Segments() []Event {
	var segs []Event
	for _, e := range r.events {
		if e.Kind == SegmentEvent {
			segs = append(segs, e)
		}
	}
	return segs
}

// Text returns the concatenated segment text, ignoring line breaks.
func (r *Recorder) Text() string {
	var sb strings.Builder
	for _, e := range r.events {
		sb.WriteString(e.Text)
	}
	return sb.String()
}

// String returns the segment text with line breaks rendered as "\n".
func (r *Recorder) String() string {
	var sb strings.Builder
	for _, e := range r.events {
		if e.Kind == LineBreakEvent {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(e.Text)
	}
	return sb.String()
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.events = nil
}
