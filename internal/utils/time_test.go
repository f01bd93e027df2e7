package utils

import (
	"testing"
	"time"
)

func TestMinutesBetween(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    int
		wantErr bool
	}{
		{name: "same time", start: "09:00", end: "09:00", want: 0},
		{name: "half hour", start: "14:00", end: "14:30", want: 30},
		{name: "across noon", start: "11:45", end: "13:15", want: 90},
		{name: "end before start", start: "15:00", end: "14:00", wantErr: true},
		{name: "bad format", start: "9am", end: "10am", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinutesBetween(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("MinutesBetween(%q, %q) error = nil, want error", tt.start, tt.end)
				}
				return
			}
			if err != nil {
				t.Fatalf("MinutesBetween(%q, %q) error = %v", tt.start, tt.end, err)
			}
			if got != tt.want {
				t.Errorf("MinutesBetween(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	start := time.Date(2024, time.February, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	days := DateRange(start, end)
	if len(days) != 5 {
		t.Fatalf("DateRange() returned %d days, want 5 (leap-year February)", len(days))
	}
	if FormatDate(days[2]) != "2024-02-29" {
		t.Errorf("DateRange()[2] = %s, want 2024-02-29", FormatDate(days[2]))
	}
	if FormatDate(days[4]) != "2024-03-02" {
		t.Errorf("DateRange()[4] = %s, want 2024-03-02", FormatDate(days[4]))
	}
}

func TestISOWeekBounds(t *testing.T) {
	tests := []struct {
		year, week int
		monday     string
		sunday     string
	}{
		{2024, 1, "2024-01-01", "2024-01-07"},
		{2024, 10, "2024-03-04", "2024-03-10"},
		{2023, 52, "2023-12-25", "2023-12-31"},
		// 2026 week 1 starts in December 2025.
		{2026, 1, "2025-12-29", "2026-01-04"},
	}

	for _, tt := range tests {
		monday, sunday := ISOWeekBounds(tt.year, tt.week)
		if FormatDate(monday) != tt.monday {
			t.Errorf("ISOWeekBounds(%d, %d) monday = %s, want %s", tt.year, tt.week, FormatDate(monday), tt.monday)
		}
		if FormatDate(sunday) != tt.sunday {
			t.Errorf("ISOWeekBounds(%d, %d) sunday = %s, want %s", tt.year, tt.week, FormatDate(sunday), tt.sunday)
		}
		// Bounds must agree with the stdlib's ISO week calculation.
		y, w := monday.ISOWeek()
		if y != tt.year || w != tt.week {
			t.Errorf("ISOWeekBounds(%d, %d) monday.ISOWeek() = %d, %d", tt.year, tt.week, y, w)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	// A Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)
	if got := FormatDate(StartOfWeek(sunday)); got != "2024-03-04" {
		t.Errorf("StartOfWeek(Sunday) = %s, want 2024-03-04", got)
	}

	monday := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(StartOfWeek(monday)); got != "2024-03-04" {
		t.Errorf("StartOfWeek(Monday) = %s, want 2024-03-04", got)
	}
}

func TestCombineDateAndTime(t *testing.T) {
	got, err := CombineDateAndTime("2024-03-04", "07:45")
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}
	want := time.Date(2024, time.March, 4, 7, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("03/04/2024", "07:45"); err == nil {
		t.Error("CombineDateAndTime() with bad date error = nil, want error")
	}
}
