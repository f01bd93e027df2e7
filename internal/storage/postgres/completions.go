package postgres

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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT(task_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			completed = EXCLUDED.completed,
			actual_start = EXCLUDED.actual_start,
			actual_end = EXCLUDED.actual_end,
			duration_min = EXCLUDED.duration_min,
			quality_score = EXCLUDED.quality_score,
			energy_before = EXCLUDED.energy_before,
			energy_after = EXCLUDED.energy_after,
			difficulty_level = EXCLUDED.difficulty_level,
			notes = EXCLUDED.notes,
			obstacles = EXCLUDED.obstacles,
			improvements = EXCLUDED.improvements,
			updated_at = EXCLUDED.updated_at`,
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
		FROM task_completions WHERE id = $1`, id)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskCompletion{}, errs.NotFound("completion", id)
	}
	return c, err
}

func (s *Store) GetCompletionByTaskDate(taskID, date string) (models.TaskCompletion, error) {
	row := s.db.QueryRow(`
		SELECT `+completionColumns+`
		FROM task_completions WHERE task_id = $1 AND date = $2`, taskID, date)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskCompletion{}, errs.NotFound("completion", taskID+"@"+date)
	}
	return c, err
}

func (s *Store) GetCompletionsForDate(date string) ([]models.TaskCompletion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+`
		FROM task_completions WHERE date = $1 ORDER BY created_at`, date)
}

func (s *Store) GetCompletionsInRange(start, end string) ([]models.TaskCompletion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+`
		FROM task_completions WHERE date >= $1 AND date <= $2 ORDER BY date, created_at`, start, end)
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
