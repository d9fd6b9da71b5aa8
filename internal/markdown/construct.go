package markdown

// construct is one open entry of the format stack together with the state of
// the delimiter that opened it.
type construct struct {
	format Format
	marker marker
}

// marker is the sub-state of an open construct. Each implementation is one
// case of the union.
type marker interface {
	isMarker()
}

// titleMarker counts '#' while open is set; content starts once it clears.
type titleMarker struct {
	level int
	open  bool
}

// codePending is a backtick run that is not yet known to be inline code, a
// fence, or nothing at all.
type codePending struct {
	count     int
	lineStart bool
}

// codeInline is a confirmed single-backtick span.
type codeInline struct{}

// fenceLang consumes the language line after an opening fence.
type fenceLang struct{}

// fenceBody is fenced content; run counts trailing backticks.
type fenceBody struct {
	run int
}

// blockMarker is a List or Quote marker. fresh is set until the rune after
// the marker has been seen.
type blockMarker struct {
	fresh bool
}

type boldMarker struct{}

// italicMarker records which delimiter opened the run so only the same one
// can close it.
type italicMarker struct {
	delim rune
}

func (titleMarker) isMarker()  {}
func (codePending) isMarker()  {}
func (codeInline) isMarker()   {}
func (fenceLang) isMarker()    {}
func (fenceBody) isMarker()    {}
func (blockMarker) isMarker()  {}
func (boldMarker) isMarker()   {}
func (italicMarker) isMarker() {}
