package sqlite

import (
	"database/sql"
	"errors"
	"time"

	errs "github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
)

const dailyLogColumns = `id, date, sleep_time, wake_time, sleep_quality,
		energy_morning, energy_afternoon, energy_evening,
		exercise_completed, exercise_type, exercise_duration_min,
		focus_quality, satisfaction, stress, reflection, tomorrow_priorities, created_at, updated_at`

func (s *Store) SaveDailyLog(log models.DailyLog) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_logs (`+dailyLogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			sleep_time = excluded.sleep_time,
			wake_time = excluded.wake_time,
			sleep_quality = excluded.sleep_quality,
			energy_morning = excluded.energy_morning,
			energy_afternoon = excluded.energy_afternoon,
			energy_evening = excluded.energy_evening,
			exercise_completed = excluded.exercise_completed,
			exercise_type = excluded.exercise_type,
			exercise_duration_min = excluded.exercise_duration_min,
			focus_quality = excluded.focus_quality,
			satisfaction = excluded.satisfaction,
			stress = excluded.stress,
			reflection = excluded.reflection,
			tomorrow_priorities = excluded.tomorrow_priorities,
			updated_at = excluded.updated_at`,
		log.ID, log.Date, log.SleepTime, log.WakeTime, nullInt(log.SleepQuality),
		nullInt(log.EnergyMorning), nullInt(log.EnergyAfternoon), nullInt(log.EnergyEvening),
		log.ExerciseCompleted, log.ExerciseType, nullInt(log.ExerciseDurationMin),
		nullInt(log.FocusQuality), nullInt(log.Satisfaction), nullInt(log.Stress), log.Reflection, log.TomorrowPriorities,
		log.CreatedAt.Format(time.RFC3339), log.UpdatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetDailyLog(date string) (models.DailyLog, error) {
	row := s.db.QueryRow(`
		SELECT `+dailyLogColumns+`
		FROM daily_logs WHERE date = ?`, date)

	l, err := scanDailyLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyLog{}, errs.NotFound("daily log", date)
	}
	return l, err
}

func (s *Store) GetDailyLogsInRange(start, end string) ([]models.DailyLog, error) {
	rows, err := s.db.Query(`
		SELECT `+dailyLogColumns+`
		FROM daily_logs WHERE date >= ? AND date <= ? ORDER BY date`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func scanDailyLog(row rowScanner) (models.DailyLog, error) {
	var l models.DailyLog
	var createdAt, updatedAt string
	var sleepQuality, energyMorning, energyAfternoon, energyEvening sql.NullInt64
	var exerciseDuration, focus, satisfaction, stress sql.NullInt64

	err := row.Scan(&l.ID, &l.Date, &l.SleepTime, &l.WakeTime, &sleepQuality,
		&energyMorning, &energyAfternoon, &energyEvening,
		&l.ExerciseCompleted, &l.ExerciseType, &exerciseDuration,
		&focus, &satisfaction, &stress, &l.Reflection, &l.TomorrowPriorities, &createdAt, &updatedAt)
	if err != nil {
		return models.DailyLog{}, err
	}

	l.SleepQuality = intPtr(sleepQuality)
	l.EnergyMorning = intPtr(energyMorning)
	l.EnergyAfternoon = intPtr(energyAfternoon)
	l.EnergyEvening = intPtr(energyEvening)
	l.ExerciseDurationMin = intPtr(exerciseDuration)
	l.FocusQuality = intPtr(focus)
	l.Satisfaction = intPtr(satisfaction)
	l.Stress = intPtr(stress)
	l.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.DailyLog{}, err
	}
	l.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at")
	if err != nil {
		return models.DailyLog{}, err
	}

	return l, nil
}
