package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/utils"
	"github.com/mholloway/cadence/internal/validation"
)

// EnsureDailyLog returns the date's log, creating an empty one on first
// access.
func (s *Service) EnsureDailyLog(date string) (models.DailyLog, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return models.DailyLog{}, errors.Validation("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	log, err := s.store.GetDailyLog(date)
	if err == nil {
		return log, nil
	}
	if !errors.IsNotFound(err) {
		return models.DailyLog{}, err
	}

	now := s.Now()
	log = models.DailyLog{
		ID:        uuid.New().String(),
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveDailyLog(log); err != nil {
		return models.DailyLog{}, err
	}
	return log, nil
}

// DailyLogInput is a partial update for a daily log. Nil fields keep their
// stored values.
type DailyLogInput struct {
	SleepTime           *string `json:"sleep_time,omitempty"`
	WakeTime            *string `json:"wake_time,omitempty"`
	SleepQuality        *int    `json:"sleep_quality,omitempty"`
	EnergyMorning       *int    `json:"energy_morning,omitempty"`
	EnergyAfternoon     *int    `json:"energy_afternoon,omitempty"`
	EnergyEvening       *int    `json:"energy_evening,omitempty"`
	ExerciseCompleted   *bool   `json:"exercise_completed,omitempty"`
	ExerciseType        *string `json:"exercise_type,omitempty"`
	ExerciseDurationMin *int    `json:"exercise_duration_min,omitempty"`
	FocusQuality        *int    `json:"focus_quality,omitempty"`
	Satisfaction        *int    `json:"satisfaction,omitempty"`
	Stress              *int    `json:"stress,omitempty"`
	Reflection          *string `json:"reflection,omitempty"`
	TomorrowPriorities  *string `json:"tomorrow_priorities,omitempty"`
}

// UpdateDailyLog applies a partial update, creating the log if needed.
func (s *Service) UpdateDailyLog(date string, input DailyLogInput) (models.DailyLog, error) {
	log, err := s.EnsureDailyLog(date)
	if err != nil {
		return models.DailyLog{}, err
	}

	if input.SleepTime != nil {
		log.SleepTime = *input.SleepTime
	}
	if input.WakeTime != nil {
		log.WakeTime = *input.WakeTime
	}
	if input.SleepQuality != nil {
		log.SleepQuality = input.SleepQuality
	}
	if input.EnergyMorning != nil {
		log.EnergyMorning = input.EnergyMorning
	}
	if input.EnergyAfternoon != nil {
		log.EnergyAfternoon = input.EnergyAfternoon
	}
	if input.EnergyEvening != nil {
		log.EnergyEvening = input.EnergyEvening
	}
	if input.ExerciseCompleted != nil {
		log.ExerciseCompleted = *input.ExerciseCompleted
	}
	if input.ExerciseType != nil {
		log.ExerciseType = *input.ExerciseType
	}
	if input.ExerciseDurationMin != nil {
		log.ExerciseDurationMin = input.ExerciseDurationMin
	}
	if input.FocusQuality != nil {
		log.FocusQuality = input.FocusQuality
	}
	if input.Satisfaction != nil {
		log.Satisfaction = input.Satisfaction
	}
	if input.Stress != nil {
		log.Stress = input.Stress
	}
	if input.Reflection != nil {
		log.Reflection = *input.Reflection
	}
	if input.TomorrowPriorities != nil {
		log.TomorrowPriorities = *input.TomorrowPriorities
	}

	if err := validation.DailyLog(log); err != nil {
		return models.DailyLog{}, err
	}
	log.UpdatedAt = s.Now()
	if err := s.store.SaveDailyLog(log); err != nil {
		return models.DailyLog{}, err
	}
	return log, nil
}
