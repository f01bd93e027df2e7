// Package validation checks user-supplied records before they reach
// storage. All checks collect every failing field into one error so a form
// or API caller can report them together.
package validation

import (
	"fmt"

	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/utils"
)

// collector accumulates per-field failures.
type collector struct {
	fields map[string]string
}

func (c *collector) add(field, msg string) {
	if c.fields == nil {
		c.fields = map[string]string{}
	}
	c.fields[field] = msg
}

func (c *collector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &errors.ValidationError{Fields: c.fields}
}

func (c *collector) score(field string, v *int) {
	if v != nil && (*v < 1 || *v > 10) {
		c.add(field, fmt.Sprintf("must be between 1 and 10, got %d", *v))
	}
}

func (c *collector) clock(field, v string) {
	if v == "" {
		return
	}
	if _, err := utils.ParseTime(v); err != nil {
		c.add(field, fmt.Sprintf("invalid time %q, expected HH:MM", v))
	}
}

// Date checks a YYYY-MM-DD string.
func Date(field, v string) error {
	if _, err := utils.ParseDate(v); err != nil {
		return errors.Validation(field, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", v))
	}
	return nil
}

// Category checks a routine category before save.
func Category(cat models.RoutineCategory) error {
	var c collector
	if cat.Name == "" {
		c.add("name", "is required")
	}
	if cat.SortOrder < 0 {
		c.add("sort_order", "must not be negative")
	}
	return c.err()
}

// Task checks a routine task before save.
func Task(task models.RoutineTask) error {
	var c collector
	if task.Name == "" {
		c.add("name", "is required")
	}
	if task.CategoryID == "" {
		c.add("category_id", "is required")
	}
	if task.Days.Len() == 0 {
		c.add("days", "at least one weekday is required")
	}
	if task.Priority != "" && !models.ValidTaskPriority(task.Priority) {
		c.add("priority", fmt.Sprintf("unknown priority %q", task.Priority))
	}
	if task.DurationMin < 0 {
		c.add("duration_min", "must not be negative")
	}
	if task.TargetQuality != 0 && (task.TargetQuality < 1 || task.TargetQuality > 10) {
		c.add("target_quality", fmt.Sprintf("must be between 1 and 10, got %d", task.TargetQuality))
	}
	c.clock("scheduled_start", task.ScheduledStart)
	c.clock("scheduled_end", task.ScheduledEnd)
	if c.fields == nil && task.ScheduledStart != "" && task.ScheduledEnd != "" {
		if _, err := utils.MinutesBetween(task.ScheduledStart, task.ScheduledEnd); err != nil {
			c.add("scheduled_end", "must not be before scheduled_start")
		}
	}
	return c.err()
}

// Completion checks the mutable fields of a task completion.
func Completion(completion models.TaskCompletion) error {
	var c collector
	switch completion.Status {
	case models.StatusNotStarted, models.StatusInProgress, models.StatusCompleted,
		models.StatusSkipped, models.StatusPostponed:
	default:
		c.add("status", fmt.Sprintf("unknown status %q", completion.Status))
	}
	c.score("quality_score", completion.QualityScore)
	c.score("energy_before", completion.EnergyBefore)
	c.score("energy_after", completion.EnergyAfter)
	c.score("difficulty_level", completion.DifficultyLevel)
	if completion.DurationMin != nil && *completion.DurationMin < 0 {
		c.add("duration_min", "must not be negative")
	}
	return c.err()
}

// DailyLog checks a daily log before save.
func DailyLog(log models.DailyLog) error {
	var c collector
	c.clock("sleep_time", log.SleepTime)
	c.clock("wake_time", log.WakeTime)
	c.score("sleep_quality", log.SleepQuality)
	c.score("energy_morning", log.EnergyMorning)
	c.score("energy_afternoon", log.EnergyAfternoon)
	c.score("energy_evening", log.EnergyEvening)
	c.score("focus_quality", log.FocusQuality)
	c.score("satisfaction", log.Satisfaction)
	c.score("stress", log.Stress)
	if log.ExerciseDurationMin != nil && *log.ExerciseDurationMin < 0 {
		c.add("exercise_duration_min", "must not be negative")
	}
	return c.err()
}

// Book checks a book before save.
func Book(book models.Book) error {
	var c collector
	if book.Title == "" {
		c.add("title", "is required")
	}
	switch book.Status {
	case models.BookWantToRead, models.BookReading, models.BookPaused,
		models.BookCompleted, models.BookAbandoned:
	default:
		c.add("status", fmt.Sprintf("unknown status %q", book.Status))
	}
	if book.Category != "" && !models.ValidBookCategory(book.Category) {
		c.add("category", fmt.Sprintf("unknown category %q", book.Category))
	}
	if book.Priority != 0 && (book.Priority < 1 || book.Priority > 5) {
		c.add("priority", fmt.Sprintf("must be between 1 and 5, got %d", book.Priority))
	}
	if book.TotalPages < 0 {
		c.add("total_pages", "must not be negative")
	}
	if book.CurrentPage < 0 {
		c.add("current_page", "must not be negative")
	}
	c.score("rating", book.Rating)
	return c.err()
}

// Session checks a reading session before save.
func Session(session models.ReadingSession) error {
	var c collector
	if session.BookID == "" {
		c.add("book_id", "is required")
	}
	if err := Date("date", session.Date); err != nil {
		c.add("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", session.Date))
	}
	c.clock("start_time", session.StartTime)
	c.clock("end_time", session.EndTime)
	if session.StartPage < 0 {
		c.add("start_page", "must not be negative")
	}
	if session.EndPage != 0 && session.EndPage < session.StartPage {
		c.add("end_page", "must not be before start_page")
	}
	c.score("focus", session.Focus)
	c.score("comprehension", session.Comprehension)
	c.score("enjoyment", session.Enjoyment)
	return c.err()
}
