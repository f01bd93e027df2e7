package schedule

import (
	"encoding/json"
	"testing"
	"time"
)

type fakeTask struct {
	days   WeekdaySet
	active bool
}

func (f fakeTask) ScheduleDays() WeekdaySet { return f.days }
func (f fakeTask) IsActive() bool           { return f.active }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWeekdaySet(t *testing.T) {
	s := NewWeekdaySet(time.Monday, time.Wednesday, time.Friday)

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	for _, d := range []time.Weekday{time.Monday, time.Wednesday, time.Friday} {
		if !s.Contains(d) {
			t.Errorf("Contains(%v) = false, want true", d)
		}
	}
	for _, d := range []time.Weekday{time.Sunday, time.Tuesday, time.Thursday, time.Saturday} {
		if s.Contains(d) {
			t.Errorf("Contains(%v) = true, want false", d)
		}
	}
}

func TestParseWeekdaySet(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    WeekdaySet
		wantErr bool
	}{
		{name: "day names", input: "mon,wed,fri", want: NewWeekdaySet(time.Monday, time.Wednesday, time.Friday)},
		{name: "full names mixed case", input: "Sunday,Saturday", want: NewWeekdaySet(time.Sunday, time.Saturday)},
		{name: "numbers", input: "1,3,5", want: NewWeekdaySet(time.Monday, time.Wednesday, time.Friday)},
		{name: "duplicate entries collapse", input: "mon,mon,1", want: NewWeekdaySet(time.Monday)},
		{name: "out of range number", input: "7", wantErr: true},
		{name: "unknown name", input: "someday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdaySet(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWeekdaySet(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeekdaySet(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeekdaySet(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWeekdaySetJSONRoundTrip(t *testing.T) {
	s := NewWeekdaySet(time.Sunday, time.Tuesday, time.Saturday)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "[0,2,6]" {
		t.Errorf("Marshal() = %s, want [0,2,6]", data)
	}

	var back WeekdaySet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != s {
		t.Errorf("round trip = %v, want %v", back, s)
	}
}

func TestWeekdaySetUnmarshalRejectsBadValues(t *testing.T) {
	var s WeekdaySet
	if err := json.Unmarshal([]byte("[0,9]"), &s); err == nil {
		t.Error("Unmarshal([0,9]) error = nil, want error")
	}
	if err := json.Unmarshal([]byte("[-1]"), &s); err == nil {
		t.Error("Unmarshal([-1]) error = nil, want error")
	}
}

func TestIsDueWeekdayCycle(t *testing.T) {
	// Mon/Wed/Fri task checked across a full week starting on a Sunday.
	task := fakeTask{days: NewWeekdaySet(time.Monday, time.Wednesday, time.Friday), active: true}
	start := date(2024, time.March, 3) // a Sunday

	want := []bool{false, true, false, true, false, true, false}
	for i, expected := range want {
		d := start.AddDate(0, 0, i)
		if got := IsDue(task, d); got != expected {
			t.Errorf("IsDue(%s %s) = %v, want %v", d.Format("2006-01-02"), d.Weekday(), got, expected)
		}
	}
}

func TestIsDueYearBoundary(t *testing.T) {
	// Dec 31 2023 is a Sunday, Jan 1 2024 a Monday. Weekday membership must
	// hold across the year boundary.
	task := fakeTask{days: NewWeekdaySet(time.Monday), active: true}

	if IsDue(task, date(2023, time.December, 31)) {
		t.Error("IsDue(Sun Dec 31) = true, want false")
	}
	if !IsDue(task, date(2024, time.January, 1)) {
		t.Error("IsDue(Mon Jan 1) = false, want true")
	}
}

func TestIsDueWeekdaysOverTwoWeeks(t *testing.T) {
	// A Mon-Fri task over fourteen consecutive days is due exactly ten times.
	task := fakeTask{days: NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday), active: true}
	start := date(2024, time.June, 2) // a Sunday

	dueCount := 0
	for i := 0; i < 14; i++ {
		if IsDue(task, start.AddDate(0, 0, i)) {
			dueCount++
		}
	}
	if dueCount != 10 {
		t.Errorf("due count over two weeks = %d, want 10", dueCount)
	}
}

func TestInactiveTaskNeverDue(t *testing.T) {
	task := fakeTask{days: EveryDay(), active: false}
	for i := 0; i < 7; i++ {
		if IsDue(task, date(2024, time.March, 3).AddDate(0, 0, i)) {
			t.Fatal("inactive task reported due")
		}
	}
}

func TestDueOn(t *testing.T) {
	monday := date(2024, time.March, 4)
	tasks := []fakeTask{
		{days: NewWeekdaySet(time.Monday), active: true},
		{days: NewWeekdaySet(time.Tuesday), active: true},
		{days: EveryDay(), active: true},
		{days: EveryDay(), active: false},
	}

	due := DueOn(tasks, monday)
	if len(due) != 2 {
		t.Errorf("DueOn() returned %d tasks, want 2", len(due))
	}
}
