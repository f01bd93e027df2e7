package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	errs "github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
)

const reviewColumns = `id, year, week_number, week_start, week_end,
		avg_completion_rate, avg_quality_score, total_reading_minutes, avg_energy_level, avg_satisfaction,
		exercise_days, reading_days, good_sleep_days,
		exercise_consistency, reading_consistency, sleep_consistency,
		overall_score, grade, highlights, suggestions, notes, created_at, updated_at`

func (s *Store) SaveReview(review models.WeeklyReview) error {
	highlights, err := encodeStrings(review.Highlights)
	if err != nil {
		return err
	}
	suggestions, err := encodeStrings(review.Suggestions)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO weekly_reviews (`+reviewColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year, week_number) DO UPDATE SET
			week_start = excluded.week_start,
			week_end = excluded.week_end,
			avg_completion_rate = excluded.avg_completion_rate,
			avg_quality_score = excluded.avg_quality_score,
			total_reading_minutes = excluded.total_reading_minutes,
			avg_energy_level = excluded.avg_energy_level,
			avg_satisfaction = excluded.avg_satisfaction,
			exercise_days = excluded.exercise_days,
			reading_days = excluded.reading_days,
			good_sleep_days = excluded.good_sleep_days,
			exercise_consistency = excluded.exercise_consistency,
			reading_consistency = excluded.reading_consistency,
			sleep_consistency = excluded.sleep_consistency,
			overall_score = excluded.overall_score,
			grade = excluded.grade,
			highlights = excluded.highlights,
			suggestions = excluded.suggestions,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		review.ID, review.Year, review.WeekNumber, review.WeekStart, review.WeekEnd,
		review.AvgCompletionRate, review.AvgQualityScore, review.TotalReadingMinutes,
		review.AvgEnergyLevel, review.AvgSatisfaction,
		review.ExerciseDays, review.ReadingDays, review.GoodSleepDays,
		review.ExerciseConsistency, review.ReadingConsistency, review.SleepConsistency,
		review.OverallScore, review.Grade, highlights, suggestions, review.Notes,
		review.CreatedAt.Format(time.RFC3339), review.UpdatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetReview(year, week int) (models.WeeklyReview, error) {
	row := s.db.QueryRow(`
		SELECT `+reviewColumns+`
		FROM weekly_reviews WHERE year = ? AND week_number = ?`, year, week)

	r, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WeeklyReview{}, errs.NotFound("weekly review", fmt.Sprintf("%d-W%02d", year, week))
	}
	return r, err
}

func (s *Store) GetAllReviews() ([]models.WeeklyReview, error) {
	rows, err := s.db.Query(`
		SELECT ` + reviewColumns + `
		FROM weekly_reviews ORDER BY year, week_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.WeeklyReview
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}

	return reviews, rows.Err()
}

func scanReview(row rowScanner) (models.WeeklyReview, error) {
	var r models.WeeklyReview
	var highlights, suggestions, createdAt, updatedAt string

	err := row.Scan(&r.ID, &r.Year, &r.WeekNumber, &r.WeekStart, &r.WeekEnd,
		&r.AvgCompletionRate, &r.AvgQualityScore, &r.TotalReadingMinutes, &r.AvgEnergyLevel, &r.AvgSatisfaction,
		&r.ExerciseDays, &r.ReadingDays, &r.GoodSleepDays,
		&r.ExerciseConsistency, &r.ReadingConsistency, &r.SleepConsistency,
		&r.OverallScore, &r.Grade, &highlights, &suggestions, &r.Notes, &createdAt, &updatedAt)
	if err != nil {
		return models.WeeklyReview{}, err
	}

	if err := json.Unmarshal([]byte(highlights), &r.Highlights); err != nil {
		return models.WeeklyReview{}, fmt.Errorf("failed to decode highlights: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestions), &r.Suggestions); err != nil {
		return models.WeeklyReview{}, fmt.Errorf("failed to decode suggestions: %w", err)
	}
	r.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.WeeklyReview{}, err
	}
	r.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at")
	if err != nil {
		return models.WeeklyReview{}, err
	}

	return r, nil
}

func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}
