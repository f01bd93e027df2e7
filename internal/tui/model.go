// Package tui is the interactive day dashboard: one date at a time, with
// the day's routine entries, completion metrics, and the wellbeing log.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mholloway/cadence/internal/ledger"
	"github.com/mholloway/cadence/internal/metrics"
	"github.com/mholloway/cadence/internal/storage"
	"github.com/mholloway/cadence/internal/utils"
)

// inputMode tracks what the next keypress means.
type inputMode int

const (
	modeNormal inputMode = iota
	// modeQuality waits for a 1-10 quality score to complete the
	// selected task (0 means 10).
	modeQuality
)

type Model struct {
	store   storage.Provider
	ledger  *ledger.Service
	metrics *metrics.Service

	date    string // YYYY-MM-DD being displayed
	view    ledger.DayView
	summary metrics.DaySummary
	catName map[string]string // category ID -> name

	cursor   int
	mode     inputMode
	loaded   bool
	quitting bool
	err      error

	width  int
	height int
}

func NewModel(store storage.Provider) Model {
	return Model{
		store:   store,
		ledger:  ledger.New(store),
		metrics: metrics.New(store),
		date:    utils.FormatDate(time.Now()),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadDay()
}

// dayMsg carries a freshly loaded day. A load error replaces the whole
// view rather than rendering stale entries.
type dayMsg struct {
	date    string
	view    ledger.DayView
	summary metrics.DaySummary
	catName map[string]string
	err     error
}

func (m Model) loadDay() tea.Cmd {
	date := m.date
	store := m.store
	ledgerSvc := m.ledger
	metricsSvc := m.metrics
	return func() tea.Msg {
		view, err := ledgerSvc.EnsureForDate(date)
		if err != nil {
			return dayMsg{date: date, err: err}
		}
		summary, err := metricsSvc.Summarize(date)
		if err != nil {
			return dayMsg{date: date, err: err}
		}
		categories, err := store.GetAllCategories(true)
		if err != nil {
			return dayMsg{date: date, err: err}
		}
		names := make(map[string]string, len(categories))
		for _, category := range categories {
			names[category.ID] = category.Name
		}
		return dayMsg{date: date, view: view, summary: summary, catName: names}
	}
}

// shiftDate moves the displayed date by delta days.
func (m *Model) shiftDate(delta int) {
	day, err := utils.ParseDate(m.date)
	if err != nil {
		return
	}
	m.date = utils.FormatDate(day.AddDate(0, 0, delta))
}

func (m Model) selected() (ledger.DayEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Entries) {
		return ledger.DayEntry{}, false
	}
	return m.view.Entries[m.cursor], true
}
