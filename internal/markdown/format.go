// Package markdown renders a stream of markdown fragments into styled
// segments in a single pass, without re-scanning anything already emitted.
package markdown

// Format is a markdown construct that affects how text is displayed.
type Format int

const (
	// Plain is text outside of any construct.
	Plain Format = iota
	// Title is a line opened by one or more '#'.
	Title
	// Bold is a run delimited by "**".
	Bold
	// Italic is a run delimited by a single '*' or '_'.
	Italic
	// Code is inline code or a fenced code block.
	Code
	// List is a line opened by '-'.
	List
	// Quote is a line opened by '>'.
	Quote
)

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case Title:
		return "title"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case List:
		return "list"
	case Quote:
		return "quote"
	default:
		return "unknown"
	}
}

// Style is the visual treatment of one emitted segment.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Monospace bool
	// Color is a hex color such as "#60A5FA".
	Color string
}

// StyleTable holds the colors used when resolving styles. Title, Code, List
// and Quote are fixed across themes; Base follows the theme.
type StyleTable struct {
	Base  string
	Title string
	Code  string
	List  string
	Quote string
}

// Fixed construct colors shared by every theme.
const (
	TitleColor = "#60A5FA"
	CodeColor  = "#F59E0B"
	ListColor  = "#34D399"
	QuoteColor = "#A78BFA"
)

// Built-in style tables.
var (
	DarkTable = StyleTable{
		Base:  "#E5E7EB",
		Title: TitleColor,
		Code:  CodeColor,
		List:  ListColor,
		Quote: QuoteColor,
	}

	LightTable = StyleTable{
		Base:  "#1F2937",
		Title: TitleColor,
		Code:  CodeColor,
		List:  ListColor,
		Quote: QuoteColor,
	}
)

// TableFor returns the built-in table for the given theme.
func TableFor(dark bool) StyleTable {
	if dark {
		return DarkTable
	}
	return LightTable
}

// Resolve folds formats, outermost first, into a single style. Later
// formats win conflicts.
func (t StyleTable) Resolve(formats ...Format) Style {
	s := Style{Color: t.Base}
	for _, f := range formats {
		s = t.apply(s, f)
	}
	return s
}

func (t StyleTable) apply(s Style, f Format) Style {
	switch f {
	case Title:
		s.Bold = true
		s.Color = t.Title
	case Bold:
		s.Bold = true
	case Italic:
		s.Italic = true
	case Code:
		s.Color = t.Code
		s.Monospace = true
	case List:
		s.Color = t.List
	case Quote:
		s.Italic = true
		s.Underline = true
		s.Color = t.Quote
	}
	return s
}
