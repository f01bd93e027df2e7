// Package catalog manages the routine task and category definitions that the
// rest of the tracker schedules against.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/storage"
	"github.com/mholloway/cadence/internal/validation"
)

type Service struct {
	store storage.Provider

	// Now is swappable for tests.
	Now func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{store: store, Now: time.Now}
}

func (s *Service) CreateCategory(category models.RoutineCategory) (models.RoutineCategory, error) {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.Active = true
	category.CreatedAt = s.Now()
	if err := validation.Category(category); err != nil {
		return models.RoutineCategory{}, err
	}
	if err := s.store.SaveCategory(category); err != nil {
		return models.RoutineCategory{}, err
	}
	return category, nil
}

func (s *Service) UpdateCategory(category models.RoutineCategory) (models.RoutineCategory, error) {
	existing, err := s.store.GetCategory(category.ID)
	if err != nil {
		return models.RoutineCategory{}, err
	}
	category.CreatedAt = existing.CreatedAt
	if err := validation.Category(category); err != nil {
		return models.RoutineCategory{}, err
	}
	if err := s.store.SaveCategory(category); err != nil {
		return models.RoutineCategory{}, err
	}
	return category, nil
}

func (s *Service) GetCategory(id string) (models.RoutineCategory, error) {
	return s.store.GetCategory(id)
}

func (s *Service) ListCategories(includeInactive bool) ([]models.RoutineCategory, error) {
	return s.store.GetAllCategories(includeInactive)
}

// CreateTask persists a new task after checking that its category exists.
func (s *Service) CreateTask(task models.RoutineTask) (models.RoutineTask, error) {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.Active = true
	task.CreatedAt = s.Now()
	task.DeletedAt = nil
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if err := validation.Task(task); err != nil {
		return models.RoutineTask{}, err
	}
	if _, err := s.store.GetCategory(task.CategoryID); err != nil {
		return models.RoutineTask{}, err
	}
	if err := s.store.SaveTask(task); err != nil {
		return models.RoutineTask{}, err
	}
	return task, nil
}

func (s *Service) UpdateTask(task models.RoutineTask) (models.RoutineTask, error) {
	existing, err := s.store.GetTask(task.ID)
	if err != nil {
		return models.RoutineTask{}, err
	}
	task.CreatedAt = existing.CreatedAt
	task.DeletedAt = existing.DeletedAt
	if err := validation.Task(task); err != nil {
		return models.RoutineTask{}, err
	}
	if task.CategoryID != existing.CategoryID {
		if _, err := s.store.GetCategory(task.CategoryID); err != nil {
			return models.RoutineTask{}, err
		}
	}
	if err := s.store.SaveTask(task); err != nil {
		return models.RoutineTask{}, err
	}
	return task, nil
}

func (s *Service) GetTask(id string) (models.RoutineTask, error) {
	return s.store.GetTask(id)
}

func (s *Service) ListTasks(includeInactive bool) ([]models.RoutineTask, error) {
	return s.store.GetAllTasks(includeInactive)
}

func (s *Service) ListTasksByCategory(categoryID string) ([]models.RoutineTask, error) {
	if _, err := s.store.GetCategory(categoryID); err != nil {
		return nil, err
	}
	return s.store.GetTasksByCategory(categoryID)
}

// DeleteTask soft-deletes so historical completions keep their task reference.
func (s *Service) DeleteTask(id string) error {
	return s.store.DeleteTask(id)
}

func (s *Service) RestoreTask(id string) (models.RoutineTask, error) {
	if err := s.store.RestoreTask(id); err != nil {
		return models.RoutineTask{}, err
	}
	return s.store.GetTask(id)
}
