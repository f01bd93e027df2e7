package sqlite

import (
	"database/sql"
	"errors"
	"time"

	errs "github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
)

const completionColumns = `id, task_id, date, status, completed, actual_start, actual_end,
		duration_min, quality_score, energy_before, energy_after, difficulty_level,
		notes, obstacles, improvements, created_at, updated_at`

func (s *Store) SaveCompletion(completion models.TaskCompletion) error {
	_, err := s.db.Exec(`
		INSERT INTO task_completions (`+completionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id, date) DO UPDATE SET
			status = excluded.status,
			completed = excluded.completed,
			actual_start = excluded.actual_start,
			actual_end = excluded.actual_end,
			duration_min = excluded.duration_min,
			quality_score = excluded.quality_score,
			energy_before = excluded.energy_before,
			energy_after = excluded.energy_after,
			difficulty_level = excluded.difficulty_level,
			notes = excluded.notes,
			obstacles = excluded.obstacles,
			improvements = excluded.improvements,
			updated_at = excluded.updated_at`,
		completion.ID, completion.TaskID, completion.Date, string(completion.Status), completion.Completed,
		nullTime(completion.ActualStart), nullTime(completion.ActualEnd),
		nullInt(completion.DurationMin), nullInt(completion.QualityScore),
		nullInt(completion.EnergyBefore), nullInt(completion.EnergyAfter), nullInt(completion.DifficultyLevel),
		completion.Notes, completion.Obstacles, completion.Improvements,
		completion.CreatedAt.Format(time.RFC3339), completion.UpdatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetCompletion(id string) (models.TaskCompletion, error) {
	row := s.db.QueryRow(`
		SELECT `+completionColumns+`
		FROM task_completions WHERE id = ?`, id)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskCompletion{}, errs.NotFound("completion", id)
	}
	return c, err
}

func (s *Store) GetCompletionByTaskDate(taskID, date string) (models.TaskCompletion, error) {
	row := s.db.QueryRow(`
		SELECT `+completionColumns+`
		FROM task_completions WHERE task_id = ? AND date = ?`, taskID, date)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskCompletion{}, errs.NotFound("completion", taskID+"@"+date)
	}
	return c, err
}

func (s *Store) GetCompletionsForDate(date string) ([]models.TaskCompletion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+`
		FROM task_completions WHERE date = ? ORDER BY created_at`, date)
}

func (s *Store) GetCompletionsInRange(start, end string) ([]models.TaskCompletion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+`
		FROM task_completions WHERE date >= ? AND date <= ? ORDER BY date, created_at`, start, end)
}

func (s *Store) queryCompletions(query string, args ...any) ([]models.TaskCompletion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.TaskCompletion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}

func scanCompletion(row rowScanner) (models.TaskCompletion, error) {
	var c models.TaskCompletion
	var status, createdAt, updatedAt string
	var actualStart, actualEnd sql.NullString
	var durationMin, quality, energyBefore, energyAfter, difficulty sql.NullInt64

	err := row.Scan(&c.ID, &c.TaskID, &c.Date, &status, &c.Completed, &actualStart, &actualEnd,
		&durationMin, &quality, &energyBefore, &energyAfter, &difficulty,
		&c.Notes, &c.Obstacles, &c.Improvements, &createdAt, &updatedAt)
	if err != nil {
		return models.TaskCompletion{}, err
	}

	c.Status = models.CompletionStatus(status)
	c.ActualStart, err = parseTimePtr(actualStart, "actual_start")
	if err != nil {
		return models.TaskCompletion{}, err
	}
	c.ActualEnd, err = parseTimePtr(actualEnd, "actual_end")
	if err != nil {
		return models.TaskCompletion{}, err
	}
	c.DurationMin = intPtr(durationMin)
	c.QualityScore = intPtr(quality)
	c.EnergyBefore = intPtr(energyBefore)
	c.EnergyAfter = intPtr(energyAfter)
	c.DifficultyLevel = intPtr(difficulty)
	c.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.TaskCompletion{}, err
	}
	c.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at")
	if err != nil {
		return models.TaskCompletion{}, err
	}

	return c, nil
}
