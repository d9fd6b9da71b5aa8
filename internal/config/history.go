package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

// ErrHistoryNotFound is returned when a history entry cannot be found.
var ErrHistoryNotFound = errors.New("history entry not found")

// HistoryEntry is one submitted query and the answer it produced.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider,omitempty"`
	Model     string    `json:"model,omitempty"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// HistorySummary represents a history entry for list display.
type HistorySummary struct {
	ID        string
	Provider  string
	Model     string
	CreatedAt time.Time
	Preview   string // Query, truncated to PreviewTruncateLength cells
}

// NewHistoryEntry creates an entry with a generated UUID.
func NewHistoryEntry(provider, model, query string) *HistoryEntry {
	return &HistoryEntry{
		ID:        uuid.New().String(),
		Provider:  provider,
		Model:     model,
		Query:     query,
		CreatedAt: time.Now(),
	}
}

// GetHistoryDir returns the directory where history entries are stored.
// This is a variable to allow mocking in tests.
var GetHistoryDir = func() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "history"), nil
}

// Save writes the entry to disk.
func (e *HistoryEntry) Save() error {
	historyDir, err := GetHistoryDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(historyDir, 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	entryPath := filepath.Join(historyDir, e.ID+".json")
	if err := os.WriteFile(entryPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}

// LoadHistory loads an entry by ID. The file name is authoritative, so the
// returned entry's ID always matches the file it was read from.
func LoadHistory(id string) (*HistoryEntry, error) {
	historyDir, err := GetHistoryDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(historyDir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrHistoryNotFound, id)
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entry HistoryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	entry.ID = id

	return &entry, nil
}

// ListHistory returns summaries of all entries sorted by CreatedAt descending.
func ListHistory() ([]HistorySummary, error) {
	entries, err := loadAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]HistorySummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, HistorySummary{
			ID:        e.ID,
			Provider:  e.Provider,
			Model:     e.Model,
			CreatedAt: e.CreatedAt,
			Preview:   Preview(e.Query),
		})
	}
	return summaries, nil
}

// RecentQueries returns up to n query strings, oldest first, ready for
// arrow-key navigation. n <= 0 returns all of them.
func RecentQueries(n int) ([]string, error) {
	entries, err := loadAll()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}

	queries := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		queries = append(queries, entries[i].Query)
	}
	return queries, nil
}

// PruneHistory deletes the oldest entries beyond limit and returns how many
// were removed.
func PruneHistory(limit int) (int, error) {
	if limit < 0 {
		limit = 0
	}
	entries, err := loadAll()
	if err != nil {
		return 0, err
	}
	if len(entries) <= limit {
		return 0, nil
	}

	historyDir, err := GetHistoryDir()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries[limit:] {
		if err := os.Remove(filepath.Join(historyDir, e.ID+".json")); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove history entry %s: %w", e.ID, err)
		}
		removed++
	}
	return removed, nil
}

// Preview collapses whitespace and truncates s to PreviewTruncateLength cells.
func Preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, PreviewTruncateLength, "...")
}

// loadAll reads every entry, newest first. Unreadable files are skipped.
func loadAll() ([]*HistoryEntry, error) {
	historyDir, err := GetHistoryDir()
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(historyDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var entries []*HistoryEntry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		entry, err := LoadHistory(strings.TrimSuffix(de.Name(), ".json"))
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
