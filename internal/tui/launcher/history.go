package launcher

// HistoryNavigator walks previously submitted queries with the arrow keys.
// Entries are ordered oldest first.
type HistoryNavigator struct {
	entries []string
	limit   int

	// pos is the browsed entry, or -1 when editing the draft.
	pos   int
	draft string
}

// NewHistoryNavigator creates a navigator seeded with entries. limit caps
// the number kept; limit <= 0 keeps everything.
func NewHistoryNavigator(entries []string, limit int) *HistoryNavigator {
	h := &HistoryNavigator{limit: limit, pos: -1}
	for _, e := range entries {
		h.Add(e)
	}
	return h
}

// IsBrowsing returns true if a history entry is shown instead of the draft.
func (h *HistoryNavigator) IsBrowsing() bool {
	return h.pos >= 0
}

// Position returns the 1-based distance from the newest entry while browsing,
// or 0.
func (h *HistoryNavigator) Position() int {
	if h.pos < 0 {
		return 0
	}
	return len(h.entries) - h.pos
}

// Len returns the number of entries.
func (h *HistoryNavigator) Len() int {
	return len(h.entries)
}

// Up moves to an older entry. The first press stores input as the draft.
// ok is false when there is nothing older to show.
func (h *HistoryNavigator) Up(input string) (entry string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.pos == -1:
		h.draft = input
		h.pos = len(h.entries) - 1
	case h.pos > 0:
		h.pos--
	default:
		return h.entries[h.pos], false
	}
	return h.entries[h.pos], true
}

// Down moves to a newer entry, restoring the draft past the newest one.
// ok is false when not browsing.
func (h *HistoryNavigator) Down() (entry string, ok bool) {
	if h.pos == -1 {
		return "", false
	}
	if h.pos < len(h.entries)-1 {
		h.pos++
		return h.entries[h.pos], true
	}
	draft := h.draft
	h.Reset()
	return draft, true
}

// Reset leaves browsing mode and forgets the draft.
func (h *HistoryNavigator) Reset() {
	h.pos = -1
	h.draft = ""
}

// Add appends entry, skipping blanks and consecutive duplicates.
func (h *HistoryNavigator) Add(entry string) {
	if entry == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}
