package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mholloway/cadence/internal/catalog"
	"github.com/mholloway/cadence/internal/ledger"
	"github.com/mholloway/cadence/internal/metrics"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/reading"
	"github.com/mholloway/cadence/internal/review"
	"github.com/mholloway/cadence/internal/schedule"
	"github.com/mholloway/cadence/internal/storage"
	"github.com/mholloway/cadence/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Catalog *catalog.Service
	Ledger  *ledger.Service
	Metrics *metrics.Service
	Reading *reading.Service
	Review  *review.Service
}

// NewContext builds the command context with all services sharing one store.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:   store,
		Catalog: catalog.New(store),
		Ledger:  ledger.New(store),
		Metrics: metrics.New(store),
		Reading: reading.New(store),
		Review:  review.New(store),
	}
}

// ParseWeekdays parses a comma-separated list of weekdays into a set.
// "daily" is a CLI shorthand for every day; everything else follows the
// schedule package's syntax.
func ParseWeekdays(s string) (schedule.WeekdaySet, error) {
	if strings.EqualFold(strings.TrimSpace(s), "daily") {
		return schedule.EveryDay(), nil
	}
	return schedule.ParseWeekdaySet(s)
}

// ResolveDate defaults an empty date flag to today and validates the format.
func ResolveDate(s string) (string, error) {
	if s == "" {
		return utils.FormatDate(time.Now()), nil
	}
	if _, err := utils.ParseDate(s); err != nil {
		return "", err
	}
	return s, nil
}

// StatusGlyph maps a completion status to its one-character list marker.
func StatusGlyph(status models.CompletionStatus) string {
	switch status {
	case models.StatusCompleted:
		return "✓"
	case models.StatusInProgress:
		return "▶"
	case models.StatusSkipped:
		return "✗"
	case models.StatusPostponed:
		return "→"
	default:
		return " "
	}
}

// FormatEntry renders one day-view line: glyph, time window, name, quality.
func FormatEntry(entry ledger.DayEntry) string {
	line := fmt.Sprintf("  [%s] %s", StatusGlyph(entry.Completion.Status), entry.Task.Name)
	if entry.Task.ScheduledStart != "" {
		line += fmt.Sprintf(" (%s", entry.Task.ScheduledStart)
		if entry.Task.ScheduledEnd != "" {
			line += "–" + entry.Task.ScheduledEnd
		}
		line += ")"
	}
	if entry.Completion.QualityScore != nil {
		line += fmt.Sprintf(" quality %d/10", *entry.Completion.QualityScore)
	}
	return line
}
