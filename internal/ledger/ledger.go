// Package ledger keeps the per-day completion rows for routine tasks in
// step with the schedule, and drives the status transitions for a day's
// work.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/schedule"
	"github.com/mholloway/cadence/internal/storage"
	"github.com/mholloway/cadence/internal/utils"
	"github.com/mholloway/cadence/internal/validation"
)

type Service struct {
	store storage.Provider

	// Now is swappable for tests.
	Now func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{
		store: store,
		Now:   time.Now,
	}
}

// DayEntry pairs a task with its completion row for one date.
type DayEntry struct {
	Task       models.RoutineTask    `json:"task"`
	Completion models.TaskCompletion `json:"completion"`
}

// DayView is everything recorded for one date.
type DayView struct {
	Date    string          `json:"date"`
	Entries []DayEntry      `json:"entries"`
	Log     models.DailyLog `json:"log"`
}

// EnsureForDate materializes a not_started completion for every active task
// scheduled on the date, plus the date's daily log. Existing rows are left
// untouched, so calling it repeatedly is safe.
func (s *Service) EnsureForDate(date string) (DayView, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return DayView{}, errors.Validation("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	tasks, err := s.store.GetAllTasks(false)
	if err != nil {
		return DayView{}, err
	}

	view := DayView{Date: date}
	for _, task := range schedule.DueOn(tasks, day) {
		completion, err := s.getOrCreateCompletion(task.ID, date)
		if err != nil {
			return DayView{}, err
		}
		view.Entries = append(view.Entries, DayEntry{Task: task, Completion: completion})
	}

	// Completions recorded off-schedule (e.g. a task done on an extra day)
	// still belong to the day view.
	extra, err := s.store.GetCompletionsForDate(date)
	if err != nil {
		return DayView{}, err
	}
	seen := make(map[string]bool, len(view.Entries))
	for _, entry := range view.Entries {
		seen[entry.Completion.ID] = true
	}
	for _, completion := range extra {
		if seen[completion.ID] {
			continue
		}
		task, err := s.store.GetTask(completion.TaskID)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return DayView{}, err
		}
		view.Entries = append(view.Entries, DayEntry{Task: task, Completion: completion})
	}

	view.Log, err = s.EnsureDailyLog(date)
	if err != nil {
		return DayView{}, err
	}

	return view, nil
}

// Start moves a completion to in_progress and stamps the actual start time.
func (s *Service) Start(taskID, date string) (models.TaskCompletion, error) {
	completion, err := s.getOrCreateCompletion(taskID, date)
	if err != nil {
		return models.TaskCompletion{}, err
	}

	switch completion.Status {
	case models.StatusCompleted:
		return models.TaskCompletion{}, errors.Conflict("completion", "task is already completed for "+date)
	case models.StatusInProgress:
		return completion, nil
	}

	now := s.Now()
	completion.Status = models.StatusInProgress
	if completion.ActualStart == nil {
		completion.ActualStart = &now
	}
	return s.save(completion)
}

// CompleteInput carries the metrics recorded when finishing a task.
type CompleteInput struct {
	QualityScore    int    `json:"quality_score"`
	EnergyBefore    *int   `json:"energy_before,omitempty"`
	EnergyAfter     *int   `json:"energy_after,omitempty"`
	DifficultyLevel *int   `json:"difficulty_level,omitempty"`
	DurationMin     *int   `json:"duration_min,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Obstacles       string `json:"obstacles,omitempty"`
	Improvements    string `json:"improvements,omitempty"`
}

// Complete marks a task done for the date. A quality score is required; the
// actual end time defaults to the clock.
func (s *Service) Complete(taskID, date string, input CompleteInput) (models.TaskCompletion, error) {
	if input.QualityScore < 1 || input.QualityScore > 10 {
		return models.TaskCompletion{}, errors.Validation("quality_score",
			fmt.Sprintf("must be between 1 and 10, got %d", input.QualityScore))
	}

	completion, err := s.getOrCreateCompletion(taskID, date)
	if err != nil {
		return models.TaskCompletion{}, err
	}
	if completion.Status == models.StatusCompleted {
		return models.TaskCompletion{}, errors.Conflict("completion", "task is already completed for "+date)
	}

	now := s.Now()
	completion.Status = models.StatusCompleted
	completion.Completed = true
	completion.QualityScore = &input.QualityScore
	if completion.ActualEnd == nil {
		completion.ActualEnd = &now
	}
	if input.EnergyBefore != nil {
		completion.EnergyBefore = input.EnergyBefore
	}
	if input.EnergyAfter != nil {
		completion.EnergyAfter = input.EnergyAfter
	}
	if input.DifficultyLevel != nil {
		completion.DifficultyLevel = input.DifficultyLevel
	}
	if input.DurationMin != nil {
		completion.DurationMin = input.DurationMin
	}
	if input.Notes != "" {
		completion.Notes = input.Notes
	}
	if input.Obstacles != "" {
		completion.Obstacles = input.Obstacles
	}
	if input.Improvements != "" {
		completion.Improvements = input.Improvements
	}
	return s.save(completion)
}

// Skip marks the task as deliberately not done today.
func (s *Service) Skip(taskID, date, reason string) (models.TaskCompletion, error) {
	return s.close(taskID, date, models.StatusSkipped, reason)
}

// Postpone pushes the task off to another day.
func (s *Service) Postpone(taskID, date, reason string) (models.TaskCompletion, error) {
	return s.close(taskID, date, models.StatusPostponed, reason)
}

func (s *Service) close(taskID, date string, status models.CompletionStatus, reason string) (models.TaskCompletion, error) {
	completion, err := s.getOrCreateCompletion(taskID, date)
	if err != nil {
		return models.TaskCompletion{}, err
	}
	if completion.Status == models.StatusCompleted {
		return models.TaskCompletion{}, errors.Conflict("completion", "task is already completed for "+date)
	}

	completion.Status = status
	completion.Completed = false
	if reason != "" {
		completion.Obstacles = reason
	}
	return s.save(completion)
}

// UpdateInput is a partial update for a completion row. Nil fields keep
// their stored values.
type UpdateInput struct {
	Completed       *bool      `json:"completed,omitempty"`
	ActualStart     *time.Time `json:"actual_start,omitempty"`
	ActualEnd       *time.Time `json:"actual_end,omitempty"`
	DurationMin     *int       `json:"duration_min,omitempty"`
	QualityScore    *int       `json:"quality_score,omitempty"`
	EnergyBefore    *int       `json:"energy_before,omitempty"`
	EnergyAfter     *int       `json:"energy_after,omitempty"`
	DifficultyLevel *int       `json:"difficulty_level,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Obstacles       *string    `json:"obstacles,omitempty"`
	Improvements    *string    `json:"improvements,omitempty"`
}

// Update applies a partial update. Flipping the completed flag re-derives
// the status, stamping the end time when it turns on.
func (s *Service) Update(taskID, date string, input UpdateInput) (models.TaskCompletion, error) {
	completion, err := s.getOrCreateCompletion(taskID, date)
	if err != nil {
		return models.TaskCompletion{}, err
	}

	if input.ActualStart != nil {
		completion.ActualStart = input.ActualStart
	}
	if input.ActualEnd != nil {
		completion.ActualEnd = input.ActualEnd
	}
	if input.DurationMin != nil {
		completion.DurationMin = input.DurationMin
	}
	if input.QualityScore != nil {
		completion.QualityScore = input.QualityScore
	}
	if input.EnergyBefore != nil {
		completion.EnergyBefore = input.EnergyBefore
	}
	if input.EnergyAfter != nil {
		completion.EnergyAfter = input.EnergyAfter
	}
	if input.DifficultyLevel != nil {
		completion.DifficultyLevel = input.DifficultyLevel
	}
	if input.Notes != nil {
		completion.Notes = *input.Notes
	}
	if input.Obstacles != nil {
		completion.Obstacles = *input.Obstacles
	}
	if input.Improvements != nil {
		completion.Improvements = *input.Improvements
	}

	if input.Completed != nil {
		completion.Completed = *input.Completed
		if *input.Completed {
			completion.Status = models.StatusCompleted
			if completion.ActualEnd == nil {
				now := s.Now()
				completion.ActualEnd = &now
			}
		} else if completion.Status == models.StatusCompleted {
			completion.Status = models.StatusNotStarted
		}
	}

	return s.save(completion)
}

// BulkItem addresses one completion in a bulk update.
type BulkItem struct {
	TaskID string      `json:"task_id"`
	Input  UpdateInput `json:"update"`
}

// BulkUpdate applies several partial updates for one date. It stops at the
// first failure and reports how many rows were written.
func (s *Service) BulkUpdate(date string, items []BulkItem) (int, error) {
	for i, item := range items {
		if _, err := s.Update(item.TaskID, date, item.Input); err != nil {
			return i, fmt.Errorf("task %s: %w", item.TaskID, err)
		}
	}
	return len(items), nil
}

func (s *Service) getOrCreateCompletion(taskID, date string) (models.TaskCompletion, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return models.TaskCompletion{}, errors.Validation("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	if _, err := s.store.GetTask(taskID); err != nil {
		return models.TaskCompletion{}, err
	}

	completion, err := s.store.GetCompletionByTaskDate(taskID, date)
	if err == nil {
		return completion, nil
	}
	if !errors.IsNotFound(err) {
		return models.TaskCompletion{}, err
	}

	now := s.Now()
	completion = models.TaskCompletion{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Date:      date,
		Status:    models.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveCompletion(completion); err != nil {
		return models.TaskCompletion{}, err
	}
	return completion, nil
}

func (s *Service) save(completion models.TaskCompletion) (models.TaskCompletion, error) {
	if err := validation.Completion(completion); err != nil {
		return models.TaskCompletion{}, err
	}
	completion.UpdatedAt = s.Now()
	if err := s.store.SaveCompletion(completion); err != nil {
		return models.TaskCompletion{}, err
	}
	return completion, nil
}
