package markdown

import "testing"

func TestStyleTable_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		formats []Format
		want    Style
	}{
		{"plain", nil, Style{Color: DarkTable.Base}},
		{"title", []Format{Title}, Style{Bold: true, Color: TitleColor}},
		{"bold", []Format{Bold}, Style{Bold: true, Color: DarkTable.Base}},
		{"italic", []Format{Italic}, Style{Italic: true, Color: DarkTable.Base}},
		{"code", []Format{Code}, Style{Monospace: true, Color: CodeColor}},
		{"list", []Format{List}, Style{Color: ListColor}},
		{"quote", []Format{Quote}, Style{Italic: true, Underline: true, Color: QuoteColor}},
		{"innermost color wins", []Format{List, Code}, Style{Monospace: true, Color: CodeColor}},
		{"emphasis keeps outer color", []Format{Quote, Bold}, Style{Bold: true, Italic: true, Underline: true, Color: QuoteColor}},
		{"title with code", []Format{Title, Code}, Style{Bold: true, Monospace: true, Color: CodeColor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DarkTable.Resolve(tt.formats...); got != tt.want {
				t.Errorf("Resolve(%v) = %+v, want %+v", tt.formats, got, tt.want)
			}
		})
	}
}

func TestTableFor(t *testing.T) {
	if TableFor(true) != DarkTable {
		t.Error("TableFor(true) should return DarkTable")
	}
	if TableFor(false) != LightTable {
		t.Error("TableFor(false) should return LightTable")
	}
	if DarkTable.Base == LightTable.Base {
		t.Error("dark and light tables should differ in base color")
	}
	if DarkTable.Code != LightTable.Code || DarkTable.Title != LightTable.Title {
		t.Error("construct colors should not depend on the theme")
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Plain, "plain"},
		{Title, "title"},
		{Bold, "bold"},
		{Italic, "italic"},
		{Code, "code"},
		{List, "list"},
		{Quote, "quote"},
		{Format(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.AppendSegment("a", Style{})
	rec.AppendLineBreak()
	rec.AppendSegment("b", Style{Bold: true})

	if got := rec.Text(); got != "ab" {
		t.Errorf("Text() = %q, want %q", got, "ab")
	}
	if got := rec.String(); got != "a\nb" {
		t.Errorf("String() = %q, want %q", got, "a\nb")
	}
	if got := len(rec.Segments()); got != 2 {
		t.Errorf("len(Segments()) = %d, want 2", got)
	}

	rec.Reset()
	if len(rec.Events()) != 0 {
		t.Errorf("Events() after Reset = %d, want 0", len(rec.Events()))
	}
}
