package models

import "time"

// DailyLog is the single wellbeing record for one calendar day. At most one
// exists per date; reads go through a lazy get-or-create.
type DailyLog struct {
	ID                  string    `json:"id"`
	Date                string    `json:"date"`                       // YYYY-MM-DD
	SleepTime           string    `json:"sleep_time,omitempty"`       // HH:MM
	WakeTime            string    `json:"wake_time,omitempty"`        // HH:MM
	SleepQuality        *int      `json:"sleep_quality,omitempty"`    // 1-10
	EnergyMorning       *int      `json:"energy_morning,omitempty"`   // 1-10
	EnergyAfternoon     *int      `json:"energy_afternoon,omitempty"` // 1-10
	EnergyEvening       *int      `json:"energy_evening,omitempty"`   // 1-10
	ExerciseCompleted   bool      `json:"exercise_completed"`
	ExerciseType        string    `json:"exercise_type,omitempty"`
	ExerciseDurationMin *int      `json:"exercise_duration_min,omitempty"`
	FocusQuality        *int      `json:"focus_quality,omitempty"` // 1-10
	Satisfaction        *int      `json:"satisfaction,omitempty"`  // 1-10
	Stress              *int      `json:"stress,omitempty"`        // 1-10
	Reflection          string    `json:"reflection,omitempty"`
	TomorrowPriorities  string    `json:"tomorrow_priorities,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// EnergyChange returns evening-minus-morning energy when both readings exist.
func (l DailyLog) EnergyChange() (int, bool) {
	if l.EnergyMorning == nil || l.EnergyEvening == nil {
		return 0, false
	}
	return *l.EnergyEvening - *l.EnergyMorning, true
}

// AvgEnergy averages whichever of the three energy readings are present.
func (l DailyLog) AvgEnergy() (float64, bool) {
	sum, n := 0, 0
	for _, v := range []*int{l.EnergyMorning, l.EnergyAfternoon, l.EnergyEvening} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// GoodSleep reports whether the night cleared the given quality threshold.
func (l DailyLog) GoodSleep(threshold int) bool {
	return l.SleepQuality != nil && *l.SleepQuality >= threshold
}
