// Package launcher implements the query launcher: a single input line whose
// answer streams into a styled surface as it arrives.
package launcher

import (
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/vstratful/openrouter-launcher/internal/api"
	"github.com/vstratful/openrouter-launcher/internal/config"
	"github.com/vstratful/openrouter-launcher/internal/markdown"
	"github.com/vstratful/openrouter-launcher/internal/tui"
)

// EscTimeoutMsg ends the double-press window.
type EscTimeoutMsg struct{}

// historySavedMsg reports the result of persisting an answer.
type historySavedMsg struct{ err error }

// writeClipboard is a variable to allow mocking in tests.
var writeClipboard = clipboard.WriteAll

// escAction is what a second Esc press does.
type escAction int

const (
	escClear escAction = iota
	escExit
)

// Model is the Bubble Tea model for the launcher.
type Model struct {
	// UI components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	client    api.Client
	provider  string
	modelName string
	system    string

	// Answer rendering. Pointers, so copies of Model share them.
	renderer *markdown.Renderer
	surface  *tui.Surface
	dark     bool

	// State
	query     string
	answer    string
	entry     *config.HistoryEntry
	stream    *StreamState
	streaming bool
	cancelled bool
	err       error
	notice    string
	ready     bool
	width     int
	height    int

	history      *HistoryNavigator
	saveHistory  bool
	historyLimit int

	escPending bool
	escAction  escAction

	log logrus.FieldLogger
}

// Config holds configuration for creating a launcher model.
type Config struct {
	Client       api.Client
	Provider     string
	ModelName    string
	SystemPrompt string

	Dark     bool
	MaxDepth int

	// History seeds arrow-key navigation, oldest first.
	History []string

	// SaveHistory persists answered queries, keeping at most HistoryLimit.
	SaveHistory  bool
	HistoryLimit int

	// Renderer is the lipgloss renderer for the answer surface. Nil uses
	// the default.
	Renderer *lipgloss.Renderer

	Logger logrus.FieldLogger
}

// New creates a launcher Model.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask anything..."
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.CursorStyle

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	surface := tui.NewSurface(cfg.Renderer)
	opts := []markdown.Option{markdown.WithDark(cfg.Dark)}
	if cfg.MaxDepth > 0 {
		opts = append(opts, markdown.WithMaxDepth(cfg.MaxDepth))
	}

	return Model{
		input:        ti,
		spinner:      sp,
		client:       cfg.Client,
		provider:     cfg.Provider,
		modelName:    cfg.ModelName,
		system:       cfg.SystemPrompt,
		renderer:     markdown.New(surface, opts...),
		surface:      surface,
		dark:         cfg.Dark,
		history:      NewHistoryNavigator(cfg.History, cfg.HistoryLimit),
		saveHistory:  cfg.SaveHistory,
		historyLimit: cfg.HistoryLimit,
		log:          log,
	}
}

// Init initializes the launcher model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Answer returns the raw markdown of the current or last answer.
func (m Model) Answer() string {
	return m.answer
}

// Err returns the last stream error.
func (m Model) Err() error {
	return m.err
}

// Streaming reports whether an answer is in flight.
func (m Model) Streaming() bool {
	return m.streaming
}

// submit starts answering query.
func (m *Model) submit(query string) tea.Cmd {
	m.history.Add(query)
	m.history.Reset()
	m.input.Reset()

	m.surface.Reset()
	m.renderer.Reset(m.dark)

	m.query = query
	m.answer = ""
	m.err = nil
	m.notice = ""
	m.cancelled = false
	m.entry = config.NewHistoryEntry(m.provider, m.modelName, query)

	m.stream = NewStreamState(config.DefaultStreamTimeout)
	m.streaming = true

	m.log.WithFields(logrus.Fields{
		"provider": m.provider,
		"model":    m.modelName,
		"id":       m.entry.ID,
	}).Debug("query submitted")

	m.refresh()
	req := api.NewQuery(m.modelName, m.system, query)
	return tea.Batch(startStream(m.client, req, m.stream), m.spinner.Tick)
}

// finish ends the current answer. The renderer is flushed exactly once, so
// a trailing unterminated construct is shown in its current style.
func (m *Model) finish(err error) tea.Cmd {
	m.renderer.Flush()
	m.streaming = false
	m.stream = nil
	m.err = err

	fields := logrus.Fields{"id": m.entry.ID, "bytes": len(m.answer)}
	switch {
	case err != nil:
		m.log.WithFields(fields).WithError(err).Warn("stream failed")
	case m.cancelled:
		m.log.WithFields(fields).Debug("stream cancelled")
	default:
		m.log.WithFields(fields).Debug("stream finished")
	}

	m.refresh()

	if err != nil || m.cancelled || m.answer == "" || !m.saveHistory {
		return nil
	}
	m.entry.Response = m.answer
	return saveEntry(m.entry, m.historyLimit)
}

func saveEntry(entry *config.HistoryEntry, limit int) tea.Cmd {
	e := *entry
	return func() tea.Msg {
		if err := e.Save(); err != nil {
			return historySavedMsg{err: err}
		}
		if limit > 0 {
			if _, err := config.PruneHistory(limit); err != nil {
				return historySavedMsg{err: err}
			}
		}
		return historySavedMsg{}
	}
}

func escTimeout() tea.Cmd {
	return tea.Tick(config.EscDoublePressTimeout, func(time.Time) tea.Msg {
		return EscTimeoutMsg{}
	})
}

// Run starts the launcher TUI.
func Run(cfg Config) error {
	p := tea.NewProgram(
		New(cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
