// Package metrics computes the daily and range analytics over completions,
// daily logs, and reading sessions.
package metrics

import (
	"math"

	"github.com/mholloway/cadence/internal/constants"
	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/storage"
)

type Service struct {
	store storage.Provider
}

func New(store storage.Provider) *Service {
	return &Service{store: store}
}

// ExcellenceChecklist is the six-target scorecard for one day.
type ExcellenceChecklist struct {
	CompletionMet   bool    `json:"completion_met"`   // completion rate >= 85%
	QualityMet      bool    `json:"quality_met"`      // avg quality >= 8
	ReadingMet      bool    `json:"reading_met"`      // >= 30 reading minutes
	ExerciseMet     bool    `json:"exercise_met"`     // exercise logged
	EnergyMet       bool    `json:"energy_met"`       // energy change >= -1
	SatisfactionMet bool    `json:"satisfaction_met"` // satisfaction >= 8
	Score           float64 `json:"score"`            // targets met / 6 * 100
}

// MetCount returns how many of the six targets were hit.
func (c ExcellenceChecklist) MetCount() int {
	n := 0
	for _, met := range []bool{c.CompletionMet, c.QualityMet, c.ReadingMet, c.ExerciseMet, c.EnergyMet, c.SatisfactionMet} {
		if met {
			n++
		}
	}
	return n
}

// DaySummary aggregates one day's records.
type DaySummary struct {
	Date            string              `json:"date"`
	TotalTasks      int                 `json:"total_tasks"`
	CompletedTasks  int                 `json:"completed_tasks"`
	SkippedTasks    int                 `json:"skipped_tasks"`
	PostponedTasks  int                 `json:"postponed_tasks"`
	InProgressTasks int                 `json:"in_progress_tasks"`
	CompletionRate  float64             `json:"completion_rate"`
	AvgQuality      float64             `json:"avg_quality"`
	ReadingMinutes  int                 `json:"reading_minutes"`
	PagesRead       int                 `json:"pages_read"`
	EnergyChange    *int                `json:"energy_change,omitempty"`
	ExerciseDone    bool                `json:"exercise_done"`
	Satisfaction    *int                `json:"satisfaction,omitempty"`
	Excellence      ExcellenceChecklist `json:"excellence"`
}

// Summarize computes the day summary for one date. Missing records count as
// zero; the date does not have to be materialized first.
func (s *Service) Summarize(date string) (DaySummary, error) {
	completions, err := s.store.GetCompletionsForDate(date)
	if err != nil {
		return DaySummary{}, err
	}

	log, err := s.store.GetDailyLog(date)
	if err != nil && !errors.IsNotFound(err) {
		return DaySummary{}, err
	}

	sessions, err := s.store.GetSessionsInRange(date, date)
	if err != nil {
		return DaySummary{}, err
	}

	return buildDaySummary(date, completions, log, sessions), nil
}

func buildDaySummary(date string, completions []models.TaskCompletion, log models.DailyLog, sessions []models.ReadingSession) DaySummary {
	summary := DaySummary{Date: date, TotalTasks: len(completions)}

	qualitySum, qualityCount := 0, 0
	for _, c := range completions {
		switch c.Status {
		case models.StatusCompleted:
			summary.CompletedTasks++
			if c.QualityScore != nil {
				qualitySum += *c.QualityScore
				qualityCount++
			}
		case models.StatusSkipped:
			summary.SkippedTasks++
		case models.StatusPostponed:
			summary.PostponedTasks++
		case models.StatusInProgress:
			summary.InProgressTasks++
		}
	}

	if summary.TotalTasks > 0 {
		summary.CompletionRate = round1(float64(summary.CompletedTasks) / float64(summary.TotalTasks) * 100)
	}
	if qualityCount > 0 {
		summary.AvgQuality = round1(float64(qualitySum) / float64(qualityCount))
	}

	for _, sess := range sessions {
		summary.ReadingMinutes += sess.DurationMin
		summary.PagesRead += sess.PagesRead
	}

	summary.ExerciseDone = log.ExerciseCompleted
	summary.Satisfaction = log.Satisfaction
	if delta, ok := log.EnergyChange(); ok {
		summary.EnergyChange = &delta
	}

	summary.Excellence = checkExcellence(summary)
	return summary
}

func checkExcellence(d DaySummary) ExcellenceChecklist {
	c := ExcellenceChecklist{
		CompletionMet:   d.CompletionRate >= constants.TargetCompletionRate,
		QualityMet:      d.AvgQuality >= constants.TargetQualityScore,
		ReadingMet:      d.ReadingMinutes >= constants.TargetReadingMinutes,
		ExerciseMet:     d.ExerciseDone,
		EnergyMet:       d.EnergyChange != nil && *d.EnergyChange >= constants.TargetEnergyChangeMin,
		SatisfactionMet: d.Satisfaction != nil && *d.Satisfaction >= constants.TargetSatisfaction,
	}

	met := 0
	for _, ok := range []bool{c.CompletionMet, c.QualityMet, c.ReadingMet, c.ExerciseMet, c.EnergyMet, c.SatisfactionMet} {
		if ok {
			met++
		}
	}
	c.Score = round1(float64(met) / constants.TargetCount * 100)
	return c
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
