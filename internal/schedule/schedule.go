// Package schedule resolves which routine tasks are due on a given date.
// Scheduling is purely weekday-based: a task carries a set of weekdays and is
// due on every date whose weekday is in the set, independent of history.
package schedule

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// WeekdaySet is a set of weekdays packed into the low seven bits.
// Bit positions follow time.Weekday, so Sunday is bit 0.
type WeekdaySet uint8

const allDays WeekdaySet = 0x7f

var dayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// NewWeekdaySet builds a set from the given weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s & allDays
}

// EveryDay returns the set containing all seven weekdays.
func EveryDay() WeekdaySet {
	return allDays
}

// ParseWeekdaySet parses a comma-separated list of weekday names or numbers
// (0=Sunday through 6=Saturday), e.g. "mon,wed,fri" or "1,3,5".
func ParseWeekdaySet(s string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if wd, ok := dayNames[part]; ok {
			set |= 1 << uint(wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return 0, fmt.Errorf("invalid weekday: %s", part)
		}
		set |= 1 << uint(num)
	}
	if set == 0 {
		return 0, fmt.Errorf("no weekdays given")
	}
	return set, nil
}

// Contains reports whether the set includes d.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Len returns the number of weekdays in the set.
func (s WeekdaySet) Len() int {
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			n++
		}
	}
	return n
}

// Weekdays returns the members of the set in Sunday-first order.
func (s WeekdaySet) Weekdays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// String formats the set as comma-separated three-letter day names.
func (s WeekdaySet) String() string {
	if s == allDays {
		return "every day"
	}
	var names []string
	for _, d := range s.Weekdays() {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}

// MarshalJSON encodes the set as a sorted array of weekday numbers, the
// format the database stores.
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	nums := make([]int, 0, 7)
	for _, d := range s.Weekdays() {
		nums = append(nums, int(d))
	}
	return json.Marshal(nums)
}

// UnmarshalJSON decodes an array of weekday numbers. Values outside 0..6 are
// rejected.
func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	var set WeekdaySet
	for _, n := range nums {
		if n < 0 || n > 6 {
			return fmt.Errorf("invalid weekday number: %d", n)
		}
		set |= 1 << uint(n)
	}
	*s = set
	return nil
}

// Schedulable is the minimal shape the resolver needs from a routine task.
type Schedulable interface {
	ScheduleDays() WeekdaySet
	IsActive() bool
}

// IsDue reports whether the task is due on the given date. Inactive tasks are
// never due.
func IsDue(task Schedulable, date time.Time) bool {
	return task.IsActive() && task.ScheduleDays().Contains(date.Weekday())
}

// DueOn filters tasks down to those due on the given date, preserving order.
func DueOn[T Schedulable](tasks []T, date time.Time) []T {
	var due []T
	for _, t := range tasks {
		if IsDue(t, date) {
			due = append(due, t)
		}
	}
	return due
}

// SortWeekdays sorts a weekday slice in Sunday-first order. Helper for
// callers that present the raw numbers.
func SortWeekdays(days []time.Weekday) {
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
}
