package markdown

import "unicode"

const (
	// DefaultMaxDepth bounds the format stack. Openers beyond it render as
	// literal text.
	DefaultMaxDepth = 32

	// Bullet replaces the '-' that opens a list line.
	Bullet = "• "

	// QuotePrefix replaces the '>' that opens a quote line.
	QuotePrefix = "> "
)

// lineStart is the last-rune sentinel for the start of the stream.
const lineStart rune = -1

// Renderer is a streaming markdown renderer. It is not safe for concurrent
// use; all calls must come from the goroutine that owns the sink.
type Renderer struct {
	sink     Sink
	dark     bool
	tables   [2]StyleTable // light, dark
	table    StyleTable
	maxDepth int

	stack []construct
	buf   []rune
	last  rune
	// star is set while a lone '*' sits at the end of buf waiting for the
	// next rune to decide what it is.
	star bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDark selects the dark or light style table.
func WithDark(dark bool) Option {
	return func(r *Renderer) {
		r.dark = dark
	}
}

// WithTables replaces the built-in style tables.
func WithTables(dark, light StyleTable) Option {
	return func(r *Renderer) {
		r.tables = [2]StyleTable{light, dark}
	}
}

// WithMaxDepth sets the maximum format stack depth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// New creates a Renderer that writes to sink. The dark table is used unless
// WithDark(false) is given.
func New(sink Sink, opts ...Option) *Renderer {
	r := &Renderer{
		sink:     sink,
		dark:     true,
		tables:   [2]StyleTable{LightTable, DarkTable},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.Reset(r.dark)
	return r
}

// Reset discards all parsing state and binds the table for the given theme.
// Output already handed to the sink is left alone.
func (r *Renderer) Reset(dark bool) {
	r.dark = dark
	if dark {
		r.table = r.tables[1]
	} else {
		r.table = r.tables[0]
	}
	r.stack = r.stack[:0]
	r.buf = r.buf[:0]
	r.last = lineStart
	r.star = false
}

// Dark reports whether the dark table is bound.
func (r *Renderer) Dark() bool {
	return r.dark
}

// Depth returns the number of open constructs.
func (r *Renderer) Depth() int {
	return len(r.stack)
}

// Pending returns the text accumulated since the last flush and the style it
// will be emitted with.
func (r *Renderer) Pending() (string, Style) {
	return string(r.buf), r.style()
}

// Append feeds one fragment. Fragments may split delimiters anywhere; only
// what is unambiguous is emitted and the rest stays buffered.
func (r *Renderer) Append(fragment string) {
	for _, c := range fragment {
		r.step(c)
		r.last = c
	}
}

// Flush emits the pending buffer in the current style. A trailing '*' that
// would close a '*' italic run is taken as that closer, since no further
// rune is coming. An unclassified backtick run is emitted as literal
// backticks. Nothing else is closed.
func (r *Renderer) Flush() {
	if t := r.top(); t != nil {
		if m, ok := t.marker.(codePending); ok {
			r.pop()
			for i := 0; i < m.count; i++ {
				r.buf = append(r.buf, '`')
			}
		}
	}
	if r.star {
		r.star = false
		if r.closesStarItalic() {
			r.retract(1)
			r.flush()
			r.pop()
			return
		}
	}
	r.flush()
}

func (r *Renderer) step(c rune) {
	if r.star && c != '*' {
		r.resolveStar(c)
	}

	if t := r.top(); t != nil {
		switch m := t.marker.(type) {
		case fenceBody:
			r.fenced(t, m, c)
			return
		case fenceLang:
			if c == '\n' {
				t.marker = fenceBody{}
			}
			return
		case codePending:
			r.classify(t, m, c)
			return
		case codeInline:
			r.inlineCode(c)
			return
		case titleMarker:
			if m.open && r.titleRun(t, m, c) {
				return
			}
		case blockMarker:
			if m.fresh {
				t.marker = blockMarker{}
				if c == ' ' {
					return
				}
			}
		}
	}

	if r.atLineStart() && r.blockStart(c) {
		return
	}

	switch c {
	case '\n':
		r.newline()
	case '`':
		r.openInlineCode()
	case '*':
		r.starRune()
	case '_':
		r.underscore()
	default:
		r.buf = append(r.buf, c)
	}
}

func (r *Renderer) atLineStart() bool {
	return r.last == lineStart || r.last == '\n'
}

// blockStart handles markers only recognized at the start of a line.
func (r *Renderer) blockStart(c rune) bool {
	switch c {
	case '\n':
		r.flush()
		r.stack = r.stack[:0]
		r.sink.AppendLineBreak()
		return true
	case '#':
		if !r.canPush() {
			return false
		}
		r.flush()
		r.push(Title, titleMarker{level: 1, open: true})
		return true
	case '-':
		if !r.canPush() {
			return false
		}
		r.flush()
		r.push(List, blockMarker{fresh: true})
		r.buf = append(r.buf, []rune(Bullet)...)
		return true
	case '>':
		if !r.canPush() {
			return false
		}
		r.flush()
		r.push(Quote, blockMarker{fresh: true})
		r.buf = append(r.buf, []rune(QuotePrefix)...)
		return true
	case '`':
		if !r.canPush() {
			return false
		}
		r.flush()
		r.push(Code, codePending{count: 1, lineStart: true})
		return true
	}
	return false
}

// titleRun reports whether c was consumed by the '#' run.
func (r *Renderer) titleRun(t *construct, m titleMarker, c rune) bool {
	switch c {
	case '#':
		m.level++
		t.marker = m
		return true
	case ' ':
		t.marker = titleMarker{level: m.level}
		return true
	case '\n':
		t.marker = titleMarker{level: m.level}
		return false
	default:
		t.marker = titleMarker{level: m.level}
		r.buf = append(r.buf, c)
		return true
	}
}

// classify decides what a pending backtick run is once the next rune arrives.
func (r *Renderer) classify(t *construct, m codePending, c rune) {
	if c == '`' {
		switch {
		case m.count == 1:
			t.marker = codePending{count: 2, lineStart: m.lineStart}
		case m.lineStart:
			t.marker = fenceLang{}
		default:
			r.pop()
			r.buf = append(r.buf, '`', '`')
			r.openInlineCode()
		}
		return
	}

	if m.count == 1 && c != '\n' {
		t.marker = codeInline{}
		r.buf = append(r.buf, c)
		return
	}

	// Not code: a lone backtick at the end of a line, or an empty pair.
	r.pop()
	for i := 0; i < m.count; i++ {
		r.buf = append(r.buf, '`')
	}
	if c == '\n' {
		r.newline()
		return
	}
	r.buf = append(r.buf, c)
}

func (r *Renderer) inlineCode(c rune) {
	switch c {
	case '`':
		r.flush()
		r.pop()
	case '\n':
		r.flush()
		r.pop()
		r.newline()
	default:
		r.buf = append(r.buf, c)
	}
}

func (r *Renderer) fenced(t *construct, m fenceBody, c rune) {
	switch c {
	case '`':
		r.buf = append(r.buf, c)
		if m.run+1 == 3 {
			r.retract(3)
			r.flush()
			r.pop()
			return
		}
		t.marker = fenceBody{run: m.run + 1}
	case '\n':
		t.marker = fenceBody{}
		r.flush()
		r.sink.AppendLineBreak()
	default:
		t.marker = fenceBody{}
		r.buf = append(r.buf, c)
	}
}

func (r *Renderer) openInlineCode() {
	if !r.canPush() {
		r.buf = append(r.buf, '`')
		return
	}
	r.flush()
	r.push(Code, codePending{count: 1})
}

func (r *Renderer) starRune() {
	if !r.star {
		r.buf = append(r.buf, '*')
		r.star = true
		return
	}

	r.star = false
	r.retract(1)
	if t := r.top(); t != nil && t.format == Bold {
		r.flush()
		r.pop()
		return
	}
	if !r.canPush() {
		r.buf = append(r.buf, '*', '*')
		return
	}
	r.flush()
	r.push(Bold, boldMarker{})
}

// resolveStar settles a lone '*' now that the rune after it is known.
func (r *Renderer) resolveStar(next rune) {
	r.star = false
	if r.closesStarItalic() {
		r.retract(1)
		r.flush()
		r.pop()
		return
	}
	if unicode.IsSpace(next) || !r.canPush() {
		return
	}
	r.retract(1)
	r.flush()
	r.push(Italic, italicMarker{delim: '*'})
}

func (r *Renderer) closesStarItalic() bool {
	t := r.top()
	return t != nil && t.format == Italic && t.marker == italicMarker{delim: '*'}
}

func (r *Renderer) underscore() {
	// "__" is left alone; there is no underscore bold.
	if r.last == '_' {
		r.buf = append(r.buf, '_')
		return
	}
	if t := r.top(); t != nil && t.format == Italic && t.marker == (italicMarker{delim: '_'}) {
		r.flush()
		r.pop()
		return
	}
	if !r.canPush() {
		r.buf = append(r.buf, '_')
		return
	}
	r.flush()
	r.push(Italic, italicMarker{delim: '_'})
}

func (r *Renderer) newline() {
	r.flush()
	for t := r.top(); t != nil; t = r.top() {
		if t.format != Title && t.format != List && t.format != Quote {
			break
		}
		r.pop()
	}
	r.sink.AppendLineBreak()
}

func (r *Renderer) flush() {
	if len(r.buf) == 0 {
		return
	}
	r.sink.AppendSegment(string(r.buf), r.style())
	r.buf = r.buf[:0]
}

func (r *Renderer) style() Style {
	s := Style{Color: r.table.Base}
	for _, c := range r.stack {
		s = r.table.apply(s, c.format)
	}
	return s
}

// retract drops up to n runes from the end of the buffer.
func (r *Renderer) retract(n int) {
	if n > len(r.buf) {
		n = len(r.buf)
	}
	r.buf = r.buf[:len(r.buf)-n]
}

func (r *Renderer) top() *construct {
	if len(r.stack) == 0 {
		return nil
	}
	return &r.stack[len(r.stack)-1]
}

func (r *Renderer) canPush() bool {
	return len(r.stack) < r.maxDepth
}

func (r *Renderer) push(f Format, m marker) {
	r.stack = append(r.stack, construct{format: f, marker: m})
}

func (r *Renderer) pop() {
	if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}
