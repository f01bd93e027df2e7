// Package storage defines the persistence interface for cadence data
// and selects a backend from a connection string.
package storage

import (
	"github.com/mholloway/cadence/internal/models"
)

// Provider is the storage contract all backends implement.
type Provider interface {
	// Init creates the schema, applying any pending migrations.
	Init() error
	// Load opens an existing store and validates the schema version.
	Load() error
	Close() error
	GetConfigPath() string

	// Routine categories.
	SaveCategory(category models.RoutineCategory) error
	GetCategory(id string) (models.RoutineCategory, error)
	GetAllCategories(includeInactive bool) ([]models.RoutineCategory, error)

	// Routine tasks.
	SaveTask(task models.RoutineTask) error
	GetTask(id string) (models.RoutineTask, error)
	GetAllTasks(includeInactive bool) ([]models.RoutineTask, error)
	GetTasksByCategory(categoryID string) ([]models.RoutineTask, error)
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Task completions. Dates are "2006-01-02" strings.
	SaveCompletion(completion models.TaskCompletion) error
	GetCompletion(id string) (models.TaskCompletion, error)
	GetCompletionByTaskDate(taskID, date string) (models.TaskCompletion, error)
	GetCompletionsForDate(date string) ([]models.TaskCompletion, error)
	GetCompletionsInRange(start, end string) ([]models.TaskCompletion, error)

	// Daily logs, unique per date.
	SaveDailyLog(log models.DailyLog) error
	GetDailyLog(date string) (models.DailyLog, error)
	GetDailyLogsInRange(start, end string) ([]models.DailyLog, error)

	// Books and reading sessions.
	SaveBook(book models.Book) error
	GetBook(id string) (models.Book, error)
	GetAllBooks(status string) ([]models.Book, error)
	SaveSession(session models.ReadingSession) error
	GetSession(id string) (models.ReadingSession, error)
	GetSessionByBookDate(bookID, date string) (models.ReadingSession, error)
	GetSessionsInRange(start, end string) ([]models.ReadingSession, error)
	GetSessionsForBook(bookID string) ([]models.ReadingSession, error)

	// Weekly reviews, unique per (year, week).
	SaveReview(review models.WeeklyReview) error
	GetReview(year, week int) (models.WeeklyReview, error)
	GetAllReviews() ([]models.WeeklyReview, error)
}
