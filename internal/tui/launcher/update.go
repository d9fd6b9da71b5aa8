package launcher

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vstratful/openrouter-launcher/internal/api"
	"github.com/vstratful/openrouter-launcher/internal/tui"
)

const (
	inputBoxHeight = 3 // input line plus border
	footerHeight   = 1
)

// Update handles messages for the launcher model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.SetYOffset(m.viewport.YOffset - 3)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.viewport.SetYOffset(m.viewport.YOffset + 3)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Account for border, padding and prompt in input width
		m.input.Width = msg.Width - 8

		vpHeight := msg.Height - inputBoxHeight - footerHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.viewport.YPosition = inputBoxHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.refresh()

	case StreamChunkMsg:
		if m.stream == nil || msg.Stream != m.stream {
			return m, nil
		}
		m.answer += msg.Text
		m.renderer.Append(msg.Text)
		m.refresh()
		return m, waitCmd(msg.Stream)

	case StreamDoneMsg:
		if m.stream == nil || msg.Stream != m.stream {
			return m, nil
		}
		cmd := m.finish(nil)
		return m, cmd

	case StreamErrMsg:
		if m.stream == nil || msg.Stream != m.stream {
			return m, nil
		}
		cmd := m.finish(msg.Err)
		return m, cmd

	case historySavedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("failed to save history")
		}
		return m, nil

	case EscTimeoutMsg:
		m.escPending = false
		return m, nil

	case spinner.TickMsg:
		if m.streaming {
			var spCmd tea.Cmd
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
		return m, nil
	}

	if !m.streaming {
		m.input, tiCmd = m.input.Update(msg)
	}
	// Keys belong to the input line; the viewport scrolls with PgUp/PgDn.
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.viewport, vpCmd = m.viewport.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd)
}

// handleKey processes launcher key bindings. Unhandled keys fall through to
// the input line.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.stream != nil {
			m.stream.Cancel()
		}
		return m, tea.Quit, true

	case tea.KeyEsc:
		if m.streaming {
			m.cancelled = true
			m.stream.Cancel()
			m.notice = "cancelled"
			cmd := m.finish(nil)
			return m, cmd, true
		}
		if m.escPending {
			m.escPending = false
			if m.escAction == escExit {
				return m, tea.Quit, true
			}
			m.input.Reset()
			m.history.Reset()
			return m, nil, true
		}
		m.escPending = true
		m.escAction = escClear
		if strings.TrimSpace(m.input.Value()) == "" {
			m.escAction = escExit
		}
		return m, escTimeout(), true

	case tea.KeyEnter:
		if m.streaming {
			return m, nil, true
		}
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil, true
		}
		m.escPending = false
		cmd := m.submit(query)
		return m, cmd, true

	case tea.KeyUp:
		if !m.streaming {
			if entry, ok := m.history.Up(m.input.Value()); ok {
				m.input.SetValue(entry)
				m.input.CursorEnd()
			}
		}
		return m, nil, true

	case tea.KeyDown:
		if !m.streaming {
			if entry, ok := m.history.Down(); ok {
				m.input.SetValue(entry)
				m.input.CursorEnd()
			}
		}
		return m, nil, true

	case tea.KeyCtrlU:
		// Unix standard: clear line
		m.input.Reset()
		m.history.Reset()
		m.escPending = false
		return m, nil, true

	case tea.KeyCtrlT:
		m.dark = !m.dark
		theme := "light"
		if m.dark {
			theme = "dark"
		}
		m.notice = "theme: " + theme + " (next answer)"
		return m, nil, true

	case tea.KeyCtrlY:
		text := m.surface.Text()
		if m.streaming {
			tail, _ := m.renderer.Pending()
			text += tail
		}
		if strings.TrimSpace(text) == "" {
			m.notice = "nothing to copy"
			return m, nil, true
		}
		if err := writeClipboard(text); err != nil {
			m.log.WithError(err).Error("copy answer failed")
			m.notice = "copy failed"
			return m, nil, true
		}
		m.notice = "copied to clipboard"
		if m.streaming {
			m.notice += " (answer still streaming)"
		}
		return m, nil, true

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil, true

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil, true
	}

	return m, nil, false
}

// refresh redraws the answer into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	var sb strings.Builder
	tail, style := m.renderer.Pending()
	sb.WriteString(m.surface.View(m.viewport.Width, tail, style))
	if m.streaming {
		sb.WriteString(tui.CursorStyle.Render("▋"))
	}
	if m.err != nil {
		if !m.surface.Empty() {
			sb.WriteString("\n\n")
		}
		sb.WriteString(tui.ErrorStyle.Render("Error: " + api.Describe(m.err)))
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}
