package models

import (
	"time"

	"github.com/mholloway/cadence/internal/schedule"
)

// RoutineCategory groups routine tasks (morning routine, deep work, evening
// wind-down, ...).
type RoutineCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	SortOrder   int       `json:"sort_order"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskPriority ranks how important a routine task is.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// ValidTaskPriority reports whether p is one of the four priority levels.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// RoutineTask is a recurring task scheduled on a fixed set of weekdays.
type RoutineTask struct {
	ID             string              `json:"id"`
	CategoryID     string              `json:"category_id"`
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	ScheduledStart string              `json:"scheduled_start,omitempty"` // HH:MM
	ScheduledEnd   string              `json:"scheduled_end,omitempty"`   // HH:MM
	DurationMin    int                 `json:"duration_min"`
	Days           schedule.WeekdaySet `json:"days"`
	Priority       TaskPriority        `json:"priority"`
	Flexible       bool                `json:"flexible"`                 // may drift from its scheduled window
	TargetQuality  int                 `json:"target_quality,omitempty"` // 1-10
	SortOrder      int                 `json:"sort_order"`
	Active         bool                `json:"active"`
	CreatedAt      time.Time           `json:"created_at"`
	DeletedAt      *time.Time          `json:"deleted_at,omitempty"`
}

// ScheduleDays implements schedule.Schedulable.
func (t RoutineTask) ScheduleDays() schedule.WeekdaySet { return t.Days }

// IsActive implements schedule.Schedulable. Soft-deleted tasks are inactive.
func (t RoutineTask) IsActive() bool { return t.Active && t.DeletedAt == nil }
