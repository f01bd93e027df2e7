// Package review generates the weekly summary: aggregated metrics, a
// weighted composite score with a letter grade, and narrative highlights.
package review

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mholloway/cadence/internal/constants"
	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/metrics"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/storage"
	"github.com/mholloway/cadence/internal/utils"
)

type Service struct {
	store   storage.Provider
	metrics *metrics.Service

	// Now is swappable for tests.
	Now func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{
		store:   store,
		metrics: metrics.New(store),
		Now:     time.Now,
	}
}

// Generate builds (or rebuilds) the review for one ISO week. Regenerating
// an existing week keeps its identity and notes and refreshes the metrics.
func (s *Service) Generate(year, week int) (models.WeeklyReview, error) {
	if week < 1 || week > 53 {
		return models.WeeklyReview{}, errors.Validation("week", fmt.Sprintf("must be between 1 and 53, got %d", week))
	}

	weekStart, weekEnd := utils.ISOWeekBounds(year, week)
	start := utils.FormatDate(weekStart)
	end := utils.FormatDate(weekEnd)

	report, err := s.metrics.Analyze(start, end)
	if err != nil {
		return models.WeeklyReview{}, err
	}
	logs, err := s.store.GetDailyLogsInRange(start, end)
	if err != nil {
		return models.WeeklyReview{}, err
	}

	now := s.Now()
	review := models.WeeklyReview{
		ID:         uuid.New().String(),
		Year:       year,
		WeekNumber: week,
		WeekStart:  start,
		WeekEnd:    end,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if existing, err := s.store.GetReview(year, week); err == nil {
		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
		review.Notes = existing.Notes
	} else if !errors.IsNotFound(err) {
		return models.WeeklyReview{}, err
	}

	review.AvgCompletionRate = report.Overview.AvgCompletionRate
	review.AvgQualityScore = report.Overview.AvgQuality
	review.TotalReadingMinutes = report.Overview.TotalReadingMin
	review.AvgEnergyLevel = report.Overview.AvgEnergy
	review.AvgSatisfaction = report.Overview.AvgSatisfaction
	review.ExerciseDays = report.Overview.ExerciseDays

	for _, day := range report.Daily {
		if day.ReadingMinutes >= constants.ConsistentReadingMin {
			review.ReadingDays++
		}
	}
	for _, log := range logs {
		if log.GoodSleep(constants.ConsistentSleepQuality) {
			review.GoodSleepDays++
		}
	}

	review.ExerciseConsistency = review.ExerciseDays >= constants.ConsistentExerciseDays
	review.ReadingConsistency = review.ReadingDays >= constants.ConsistentReadingDays
	review.SleepConsistency = review.GoodSleepDays >= constants.ConsistentSleepDays

	review.OverallScore = compositeScore(review)
	review.Grade = gradeFor(review.OverallScore)
	review.Highlights = highlights(review)
	review.Suggestions = suggestions(review)

	if err := s.store.SaveReview(review); err != nil {
		return models.WeeklyReview{}, err
	}
	return review, nil
}

// GenerateForDate generates the review for the ISO week containing the date.
func (s *Service) GenerateForDate(date string) (models.WeeklyReview, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return models.WeeklyReview{}, errors.Validation("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	year, week := day.ISOWeek()
	return s.Generate(year, week)
}

// PreviousWeekDelta compares a review against the prior ISO week's stored
// review. ok is false when no prior review exists.
func (s *Service) PreviousWeekDelta(r models.WeeklyReview) (scoreDelta, completionDelta float64, ok bool) {
	weekStart, _ := utils.ISOWeekBounds(r.Year, r.WeekNumber)
	prevYear, prevWeek := weekStart.AddDate(0, 0, -7).ISOWeek()
	prev, err := s.store.GetReview(prevYear, prevWeek)
	if err != nil {
		return 0, 0, false
	}
	return r.OverallScore - prev.OverallScore, r.AvgCompletionRate - prev.AvgCompletionRate, true
}

func (s *Service) Get(year, week int) (models.WeeklyReview, error) {
	return s.store.GetReview(year, week)
}

func (s *Service) List() ([]models.WeeklyReview, error) {
	return s.store.GetAllReviews()
}

// SetNotes attaches free-form notes to an existing review.
func (s *Service) SetNotes(year, week int, notes string) (models.WeeklyReview, error) {
	review, err := s.store.GetReview(year, week)
	if err != nil {
		return models.WeeklyReview{}, err
	}
	review.Notes = notes
	review.UpdatedAt = s.Now()
	if err := s.store.SaveReview(review); err != nil {
		return models.WeeklyReview{}, err
	}
	return review, nil
}

// compositeScore blends the week's metrics into a 0-100 score. Consistency
// components are all-or-nothing; quality-style scores scale from their 1-10
// range, with energy maxing out at 7.
func compositeScore(r models.WeeklyReview) float64 {
	energyComponent := r.AvgEnergyLevel / 10 * 100
	if r.AvgEnergyLevel >= 7 {
		energyComponent = 100
	}

	score := constants.WeightCompletion*r.AvgCompletionRate +
		constants.WeightQuality*(r.AvgQualityScore/10*100) +
		constants.WeightReading*consistencyScore(r.ReadingConsistency) +
		constants.WeightExercise*consistencyScore(r.ExerciseConsistency) +
		constants.WeightSatisfaction*(r.AvgSatisfaction/10*100) +
		constants.WeightEnergy*energyComponent +
		constants.WeightSleep*consistencyScore(r.SleepConsistency)

	return math.Round(score*10) / 10
}

func consistencyScore(met bool) float64 {
	if met {
		return 100
	}
	return 0
}

// gradeFor maps a composite score onto letter grades in five point bands,
// with minus grades down to C- and a floor of D below 50.
func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	default:
		return "D"
	}
}

func highlights(r models.WeeklyReview) []string {
	var out []string
	if r.AvgCompletionRate >= constants.TargetCompletionRate {
		out = append(out, fmt.Sprintf("completed %.1f%% of scheduled tasks", r.AvgCompletionRate))
	}
	if r.AvgQualityScore >= constants.TargetQualityScore {
		out = append(out, fmt.Sprintf("average quality of %.1f across completed tasks", r.AvgQualityScore))
	}
	if r.ReadingConsistency {
		out = append(out, fmt.Sprintf("read on %d days for %d minutes total", r.ReadingDays, r.TotalReadingMinutes))
	}
	if r.ExerciseConsistency {
		out = append(out, fmt.Sprintf("exercised on %d of 7 days", r.ExerciseDays))
	}
	if r.SleepConsistency {
		out = append(out, fmt.Sprintf("good sleep on %d nights", r.GoodSleepDays))
	}
	return out
}

func suggestions(r models.WeeklyReview) []string {
	var out []string
	if r.AvgCompletionRate < constants.TargetCompletionRate {
		out = append(out, "completion rate fell short of 85%; consider trimming the schedule or moving tasks to lighter days")
	}
	if r.AvgQualityScore > 0 && r.AvgQualityScore < constants.TargetQualityScore {
		out = append(out, "quality scores ran low; look for tasks scheduled at low-energy hours")
	}
	if !r.ReadingConsistency {
		out = append(out, fmt.Sprintf("reading happened on %d days; aim for %d", r.ReadingDays, constants.ConsistentReadingDays))
	}
	if !r.ExerciseConsistency {
		out = append(out, fmt.Sprintf("exercise happened on %d days; aim for %d", r.ExerciseDays, constants.ConsistentExerciseDays))
	}
	if !r.SleepConsistency {
		out = append(out, "sleep quality lagged; an earlier wind-down may help")
	}
	return out
}
