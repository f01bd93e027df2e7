package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	errs "github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
)

const taskColumns = `id, category_id, name, description, scheduled_start, scheduled_end,
		duration_min, days, priority, flexible, target_quality, sort_order, active, created_at, deleted_at`

func (s *Store) SaveTask(task models.RoutineTask) error {
	days, err := json.Marshal(task.Days)
	if err != nil {
		return fmt.Errorf("failed to encode days: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO routine_tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT(id) DO UPDATE SET
			category_id = EXCLUDED.category_id,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			scheduled_start = EXCLUDED.scheduled_start,
			scheduled_end = EXCLUDED.scheduled_end,
			duration_min = EXCLUDED.duration_min,
			days = EXCLUDED.days,
			priority = EXCLUDED.priority,
			flexible = EXCLUDED.flexible,
			target_quality = EXCLUDED.target_quality,
			sort_order = EXCLUDED.sort_order,
			active = EXCLUDED.active,
			deleted_at = EXCLUDED.deleted_at`,
		task.ID, task.CategoryID, task.Name, task.Description, task.ScheduledStart, task.ScheduledEnd,
		task.DurationMin, string(days), string(task.Priority), task.Flexible, task.TargetQuality, task.SortOrder, task.Active,
		task.CreatedAt.Format(time.RFC3339), nullTime(task.DeletedAt))

	return err
}

func (s *Store) GetTask(id string) (models.RoutineTask, error) {
	row := s.db.QueryRow(`
		SELECT `+taskColumns+`
		FROM routine_tasks WHERE id = $1 AND deleted_at IS NULL`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoutineTask{}, errs.NotFound("task", id)
	}
	return t, err
}

func (s *Store) GetAllTasks(includeInactive bool) ([]models.RoutineTask, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM routine_tasks WHERE deleted_at IS NULL`
	if !includeInactive {
		query += " AND active"
	}
	query += " ORDER BY sort_order, scheduled_start, name"

	return s.queryTasks(query)
}

func (s *Store) GetTasksByCategory(categoryID string) ([]models.RoutineTask, error) {
	return s.queryTasks(`
		SELECT `+taskColumns+`
		FROM routine_tasks WHERE category_id = $1 AND deleted_at IS NULL
		ORDER BY sort_order, scheduled_start, name`, categoryID)
}

func (s *Store) DeleteTask(id string) error {
	result, err := s.db.Exec(`
		UPDATE routine_tasks SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFound("task", id)
	}

	return nil
}

func (s *Store) RestoreTask(id string) error {
	result, err := s.db.Exec(`
		UPDATE routine_tasks SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFound("task", id)
	}

	return nil
}

func (s *Store) queryTasks(query string, args ...any) ([]models.RoutineTask, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.RoutineTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func scanTask(row rowScanner) (models.RoutineTask, error) {
	var t models.RoutineTask
	var days, priority, createdAt string
	var deletedAt sql.NullString

	err := row.Scan(&t.ID, &t.CategoryID, &t.Name, &t.Description, &t.ScheduledStart, &t.ScheduledEnd,
		&t.DurationMin, &days, &priority, &t.Flexible, &t.TargetQuality, &t.SortOrder, &t.Active, &createdAt, &deletedAt)
	if err != nil {
		return models.RoutineTask{}, err
	}
	t.Priority = models.TaskPriority(priority)

	if err := json.Unmarshal([]byte(days), &t.Days); err != nil {
		return models.RoutineTask{}, fmt.Errorf("failed to decode days for task %s: %w", t.ID, err)
	}
	t.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.RoutineTask{}, err
	}
	t.DeletedAt, err = parseTimePtr(deletedAt, "deleted_at")
	if err != nil {
		return models.RoutineTask{}, err
	}

	return t, nil
}
