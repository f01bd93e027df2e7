package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/mholloway/cadence/internal/ledger"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/schedule"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    schedule.WeekdaySet
		wantErr bool
	}{
		{"daily", schedule.EveryDay(), false},
		{"Daily", schedule.EveryDay(), false},
		{"mon,wed,fri", schedule.NewWeekdaySet(time.Monday, time.Wednesday, time.Friday), false},
		{"Monday, Friday", schedule.NewWeekdaySet(time.Monday, time.Friday), false},
		{"0,6", schedule.NewWeekdaySet(time.Sunday, time.Saturday), false},
		{"mon,1", schedule.NewWeekdaySet(time.Monday), false},
		{"frittata", 0, true},
		{"7", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekdays(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWeekdays(%q) succeeded, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWeekdays(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestResolveDate(t *testing.T) {
	got, err := ResolveDate("")
	if err != nil {
		t.Fatalf("ResolveDate(\"\") failed: %v", err)
	}
	if _, err := time.Parse("2006-01-02", got); err != nil {
		t.Errorf("ResolveDate(\"\") = %q, not a date", got)
	}

	if got, err := ResolveDate("2026-03-02"); err != nil || got != "2026-03-02" {
		t.Errorf("ResolveDate(2026-03-02) = %q, %v", got, err)
	}

	if _, err := ResolveDate("03/02/2026"); err == nil {
		t.Error("ResolveDate accepted a non-ISO date")
	}
}

func TestFormatEntry(t *testing.T) {
	quality := 8
	entry := ledger.DayEntry{
		Task: models.RoutineTask{
			Name:           "Meditation",
			ScheduledStart: "06:30",
			ScheduledEnd:   "07:00",
		},
		Completion: models.TaskCompletion{
			Status:       models.StatusCompleted,
			QualityScore: &quality,
		},
	}

	line := FormatEntry(entry)
	for _, want := range []string{"✓", "Meditation", "06:30", "07:00", "quality 8/10"} {
		if !strings.Contains(line, want) {
			t.Errorf("FormatEntry() = %q, missing %q", line, want)
		}
	}

	bare := FormatEntry(ledger.DayEntry{
		Task:       models.RoutineTask{Name: "Stretch"},
		Completion: models.TaskCompletion{Status: models.StatusNotStarted},
	})
	if strings.Contains(bare, "(") || strings.Contains(bare, "quality") {
		t.Errorf("FormatEntry() = %q, want no window or quality", bare)
	}
}
