package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mholloway/cadence/internal/ledger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dayMsg:
		// A stale load can arrive after the user has already moved on.
		if msg.date != m.date {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.view = msg.view
		m.summary = msg.summary
		m.catName = msg.catName
		m.loaded = true
		m.err = nil
		if m.cursor >= len(m.view.Entries) {
			m.cursor = max(0, len(m.view.Entries)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeQuality {
			return m.updateQuality(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.view.Entries)-1 {
			m.cursor++
		}

	case "left", "h":
		m.shiftDate(-1)
		m.cursor = 0
		return m, m.loadDay()

	case "right", "l":
		m.shiftDate(1)
		m.cursor = 0
		return m, m.loadDay()

	case "t":
		fresh := NewModel(m.store)
		fresh.width, fresh.height = m.width, m.height
		return fresh, fresh.loadDay()

	case "r":
		return m, m.loadDay()

	case "s":
		return m.transition(func(entry ledger.DayEntry) error {
			_, err := m.ledger.Start(entry.Task.ID, m.date)
			return err
		})

	case "c":
		if _, ok := m.selected(); ok {
			m.mode = modeQuality
		}

	case "x":
		return m.transition(func(entry ledger.DayEntry) error {
			_, err := m.ledger.Skip(entry.Task.ID, m.date, "")
			return err
		})

	case "p":
		return m.transition(func(entry ledger.DayEntry) error {
			_, err := m.ledger.Postpone(entry.Task.ID, m.date, "")
			return err
		})
	}

	return m, nil
}

// updateQuality consumes the quality digit that finishes a completion.
func (m Model) updateQuality(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "esc" || key == "q":
		m.mode = modeNormal
		return m, nil

	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		quality := int(key[0] - '0')
		if quality == 0 {
			quality = 10
		}
		m.mode = modeNormal
		return m.transition(func(entry ledger.DayEntry) error {
			_, err := m.ledger.Complete(entry.Task.ID, m.date, ledger.CompleteInput{
				QualityScore: quality,
			})
			return err
		})
	}

	return m, nil
}

// transition applies fn to the selected entry and reloads the day. The
// ledger enforces the status rules, so errors (double completion, ...)
// surface in the status line instead of crashing the dashboard.
func (m Model) transition(fn func(ledger.DayEntry) error) (tea.Model, tea.Cmd) {
	entry, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := fn(entry); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	return m, m.loadDay()
}
