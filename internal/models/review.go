package models

import "time"

// WeeklyReview is the generated summary for one ISO week. Unique per
// (year, week number); regeneration overwrites the metrics in place.
type WeeklyReview struct {
	ID         string `json:"id"`
	Year       int    `json:"year"`
	WeekNumber int    `json:"week_number"`
	WeekStart  string `json:"week_start"` // YYYY-MM-DD, Monday
	WeekEnd    string `json:"week_end"`   // YYYY-MM-DD, Sunday

	AvgCompletionRate   float64 `json:"avg_completion_rate"`
	AvgQualityScore     float64 `json:"avg_quality_score"`
	TotalReadingMinutes int     `json:"total_reading_minutes"`
	AvgEnergyLevel      float64 `json:"avg_energy_level"`
	AvgSatisfaction     float64 `json:"avg_satisfaction"`

	ExerciseDays  int `json:"exercise_days"`
	ReadingDays   int `json:"reading_days"`
	GoodSleepDays int `json:"good_sleep_days"`

	ExerciseConsistency bool `json:"exercise_consistency"`
	ReadingConsistency  bool `json:"reading_consistency"`
	SleepConsistency    bool `json:"sleep_consistency"`

	OverallScore float64  `json:"overall_score"`
	Grade        string   `json:"grade"`
	Highlights   []string `json:"highlights,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
	Notes        string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
