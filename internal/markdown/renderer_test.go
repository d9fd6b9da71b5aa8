package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func render(t *testing.T, fragments ...string) *Recorder {
	t.Helper()
	rec := &Recorder{}
	r := New(rec)
	for _, f := range fragments {
		r.Append(f)
	}
	r.Flush()
	return rec
}

func seg(text string, s Style) Event {
	return Event{Kind: SegmentEvent, Text: text, Style: s}
}

func lineBreak() Event {
	return Event{Kind: LineBreakEvent}
}

var (
	plainStyle  = DarkTable.Resolve()
	boldStyle   = DarkTable.Resolve(Bold)
	italicStyle = DarkTable.Resolve(Italic)
	titleStyle  = DarkTable.Resolve(Title)
	codeStyle   = DarkTable.Resolve(Code)
	listStyle   = DarkTable.Resolve(List)
	quoteStyle  = DarkTable.Resolve(Quote)
)

func TestRenderer_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Event
	}{
		{
			name:  "title",
			input: "# Hello",
			want:  []Event{seg("Hello", titleStyle)},
		},
		{
			name:  "bold and italic",
			input: "**bold** and *italic*",
			want: []Event{
				seg("bold", boldStyle),
				seg(" and ", plainStyle),
				seg("italic", italicStyle),
			},
		},
		{
			name:  "inline code",
			input: "`code`",
			want:  []Event{seg("code", codeStyle)},
		},
		{
			name:  "fenced code block",
			input: "```\nline1\nline2\n```",
			want: []Event{
				seg("line1", codeStyle),
				lineBreak(),
				seg("line2", codeStyle),
				lineBreak(),
			},
		},
		{
			name:  "fence language line is discarded",
			input: "```go\nx := 1\n```\nafter",
			want: []Event{
				seg("x := 1", codeStyle),
				lineBreak(),
				lineBreak(),
				seg("after", plainStyle),
			},
		},
		{
			name:  "unterminated bold",
			input: "**unterminated",
			want:  []Event{seg("unterminated", boldStyle)},
		},
		{
			name:  "list items",
			input: "- item1\n- item2",
			want: []Event{
				seg("• item1", listStyle),
				lineBreak(),
				seg("• item2", listStyle),
			},
		},
		{
			name:  "quote",
			input: "> wise words",
			want:  []Event{seg("> wise words", quoteStyle)},
		},
		{
			name:  "title does not span lines",
			input: "## Head\nbody",
			want: []Event{
				seg("Head", titleStyle),
				lineBreak(),
				seg("body", plainStyle),
			},
		},
		{
			name:  "title with no space keeps content",
			input: "#Head",
			want:  []Event{seg("Head", titleStyle)},
		},
		{
			name:  "underscore italic",
			input: "an _emphasised_ word",
			want: []Event{
				seg("an ", plainStyle),
				seg("emphasised", italicStyle),
				seg(" word", plainStyle),
			},
		},
		{
			name:  "double underscore is literal after the first",
			input: "__x",
			want:  []Event{seg("_x", italicStyle)},
		},
		{
			name:  "lone star before space stays literal",
			input: "2 * 3",
			want:  []Event{seg("2 * 3", plainStyle)},
		},
		{
			name:  "trailing star without open italic stays literal",
			input: "a*",
			want:  []Event{seg("a*", plainStyle)},
		},
		{
			name:  "inline code mid line",
			input: "run `go test` now",
			want: []Event{
				seg("run ", plainStyle),
				seg("go test", codeStyle),
				seg(" now", plainStyle),
			},
		},
		{
			name:  "inline code force-closed by newline",
			input: "`open\nnext",
			want: []Event{
				seg("open", codeStyle),
				lineBreak(),
				seg("next", plainStyle),
			},
		},
		{
			name:  "double backtick false positive",
			input: "``x",
			want:  []Event{seg("``x", plainStyle)},
		},
		{
			name:  "lone backtick at end of line",
			input: "a `\nb",
			want: []Event{
				seg("a ", plainStyle),
				seg("`", plainStyle),
				lineBreak(),
				seg("b", plainStyle),
			},
		},
		{
			name:  "partial closing fence is code content",
			input: "```\na``b\n```",
			want: []Event{
				seg("a``b", codeStyle),
				lineBreak(),
			},
		},
		{
			name:  "markers inside fence are literal",
			input: "```\n# not a title\n- nor a list\n```",
			want: []Event{
				seg("# not a title", codeStyle),
				lineBreak(),
				seg("- nor a list", codeStyle),
				lineBreak(),
			},
		},
		{
			name:  "blank line closes everything",
			input: "**open\n\nplain",
			want: []Event{
				seg("open", boldStyle),
				lineBreak(),
				lineBreak(),
				seg("plain", plainStyle),
			},
		},
		{
			name:  "bold survives a single newline",
			input: "**a\nb**",
			want: []Event{
				seg("a", boldStyle),
				lineBreak(),
				seg("b", boldStyle),
			},
		},
		{
			name:  "bold inside list",
			input: "- **x** y",
			want: []Event{
				seg("• ", listStyle),
				seg("x", DarkTable.Resolve(List, Bold)),
				seg(" y", listStyle),
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.input).Events()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("events for %q:\n got  %+v\n want %+v", tt.input, got, tt.want)
			}
		})
	}
}

var splitCorpus = []string{
	"# Hello",
	"**bold** and *italic*",
	"`code` and ``not code``",
	"```python\nprint('hi')\n```\ndone",
	"- item1\n- item2\n\n> quoted *text*",
	"mixed **bold _and italic_** text\n## Title `code`\n",
	"a*b**c***d",
	"``` \n``\n`\n```",
	"日本語 **太字** と `コード`",
}

func TestRenderer_SplitInvariance(t *testing.T) {
	for _, input := range splitCorpus {
		want := render(t, input).Events()
		runes := []rune(input)
		for i := 0; i <= len(runes); i++ {
			a, b := string(runes[:i]), string(runes[i:])
			got := render(t, a, b).Events()
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("split %q|%q:\n got  %+v\n want %+v", a, b, got, want)
			}
		}
	}
}

func TestRenderer_RuneByRune(t *testing.T) {
	for _, input := range splitCorpus {
		want := render(t, input).Events()

		var fragments []string
		for _, c := range input {
			fragments = append(fragments, string(c))
		}
		got := render(t, fragments...).Events()
		if !reflect.DeepEqual(got, want) {
			t.Errorf("rune-by-rune %q:\n got  %+v\n want %+v", input, got, want)
		}
	}
}

func TestRenderer_FlushIdempotent(t *testing.T) {
	rec := &Recorder{}
	r := New(rec)
	r.Append("**half")
	r.Flush()
	n := len(rec.Events())
	r.Flush()
	if len(rec.Events()) != n {
		t.Errorf("second Flush() emitted %d events, want none", len(rec.Events())-n)
	}
}

func TestRenderer_FlushKeepsConstructsOpen(t *testing.T) {
	rec := &Recorder{}
	r := New(rec)
	r.Append("**a")
	r.Flush()
	r.Append("b**")
	r.Flush()

	want := []Event{seg("a", boldStyle), seg("b", boldStyle)}
	if got := rec.Events(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %+v, want %+v", got, want)
	}
	if r.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", r.Depth())
	}
}

func TestRenderer_TextConservation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# Hello world", "Hello world"},
		{"**a** *b* _c_ `d`", "a b c d"},
		{"- one\n- two", "• one• two"},
		{"> q", "> q"},
		{"``x", "``x"},
		{"2 * 3 = 6", "2 * 3 = 6"},
		{"```js\nlet a = `b`\n```", "let a = `b`"},
		{"use a `", "use a `"},
		{"x ``", "x ``"},
		{"`", "`"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := render(t, tt.input).Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_Pending(t *testing.T) {
	rec := &Recorder{}
	r := New(rec)
	r.Append("**stream")

	text, style := r.Pending()
	if text != "stream" {
		t.Errorf("Pending() text = %q, want %q", text, "stream")
	}
	if style != boldStyle {
		t.Errorf("Pending() style = %+v, want %+v", style, boldStyle)
	}
	if len(rec.Events()) != 0 {
		t.Errorf("Pending() should not emit, got %d events", len(rec.Events()))
	}
}

func TestRenderer_Reset(t *testing.T) {
	rec := &Recorder{}
	r := New(rec)
	r.Append("**bold")
	r.Flush()
	emitted := len(rec.Events())

	r.Reset(false)
	if r.Depth() != 0 {
		t.Errorf("Depth() after Reset = %d, want 0", r.Depth())
	}
	if r.Dark() {
		t.Error("Dark() after Reset(false) = true, want false")
	}
	if text, _ := r.Pending(); text != "" {
		t.Errorf("Pending() after Reset = %q, want empty", text)
	}
	if len(rec.Events()) != emitted {
		t.Error("Reset() must not touch emitted output")
	}

	// Line-start state is restored, so '#' opens a title again.
	r.Append("# light")
	r.Flush()
	last := rec.Events()[len(rec.Events())-1]
	want := seg("light", LightTable.Resolve(Title))
	if last != want {
		t.Errorf("after Reset got %+v, want %+v", last, want)
	}
}

func TestRenderer_ThemeIsNotRetroactive(t *testing.T) {
	rec := &Recorder{}
	r := New(rec, WithDark(true))
	r.Append("dark text\n")
	r.Reset(false)
	r.Append("light text")
	r.Flush()

	segs := rec.Segments()
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].Style.Color != DarkTable.Base {
		t.Errorf("first segment color = %q, want %q", segs[0].Style.Color, DarkTable.Base)
	}
	if segs[1].Style.Color != LightTable.Base {
		t.Errorf("second segment color = %q, want %q", segs[1].Style.Color, LightTable.Base)
	}
}

func TestRenderer_MaxDepth(t *testing.T) {
	rec := &Recorder{}
	r := New(rec, WithMaxDepth(2))
	r.Append("**_x `y")
	r.Flush()

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	want := "x `y"
	if got := rec.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestRenderer_ManyUnclosedBackticksStayBounded(t *testing.T) {
	rec := &Recorder{}
	r := New(rec, WithMaxDepth(4))
	r.Append("x" + strings.Repeat("`a", 1000))
	r.Flush()
	if r.Depth() > 4 {
		t.Errorf("Depth() = %d, want <= 4", r.Depth())
	}
}

func TestRenderer_WithTables(t *testing.T) {
	custom := StyleTable{Base: "#000001", Title: "#000002", Code: "#000003", List: "#000004", Quote: "#000005"}
	rec := &Recorder{}
	r := New(rec, WithTables(custom, LightTable))
	r.Append("`c`")
	r.Flush()

	segs := rec.Segments()
	if len(segs) != 1 || segs[0].Style.Color != "#000003" {
		t.Errorf("segments = %+v, want one segment colored #000003", segs)
	}
}
