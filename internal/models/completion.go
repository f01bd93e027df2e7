package models

import "time"

type CompletionStatus string

const (
	StatusNotStarted CompletionStatus = "not_started"
	StatusInProgress CompletionStatus = "in_progress"
	StatusCompleted  CompletionStatus = "completed"
	StatusSkipped    CompletionStatus = "skipped"
	StatusPostponed  CompletionStatus = "postponed"
)

// Terminal reports whether the status is an end state for the day.
func (s CompletionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusSkipped || s == StatusPostponed
}

// TaskCompletion is the per-day ledger row for a routine task. At most one
// exists per (task, date).
type TaskCompletion struct {
	ID              string           `json:"id"`
	TaskID          string           `json:"task_id"`
	Date            string           `json:"date"` // YYYY-MM-DD
	Status          CompletionStatus `json:"status"`
	Completed       bool             `json:"completed"`
	ActualStart     *time.Time       `json:"actual_start,omitempty"`
	ActualEnd       *time.Time       `json:"actual_end,omitempty"`
	DurationMin     *int             `json:"duration_min,omitempty"`
	QualityScore    *int             `json:"quality_score,omitempty"` // 1-10
	EnergyBefore    *int             `json:"energy_before,omitempty"` // 1-10
	EnergyAfter     *int             `json:"energy_after,omitempty"`  // 1-10
	DifficultyLevel *int             `json:"difficulty_level,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Obstacles       string           `json:"obstacles,omitempty"`
	Improvements    string           `json:"improvements,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// EnergyDelta returns after-minus-before energy when both readings exist.
func (c TaskCompletion) EnergyDelta() (int, bool) {
	if c.EnergyBefore == nil || c.EnergyAfter == nil {
		return 0, false
	}
	return *c.EnergyAfter - *c.EnergyBefore, true
}

// ActualDuration derives the completion's duration in minutes. An explicit
// duration wins over the start/end pair.
func (c TaskCompletion) ActualDuration() (int, bool) {
	if c.DurationMin != nil {
		return *c.DurationMin, true
	}
	if c.ActualStart != nil && c.ActualEnd != nil {
		return int(c.ActualEnd.Sub(*c.ActualStart).Minutes()), true
	}
	return 0, false
}
