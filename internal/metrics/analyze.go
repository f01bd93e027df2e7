package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/mholloway/cadence/internal/constants"
	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/schedule"
	"github.com/mholloway/cadence/internal/utils"
)

// Report is the full range analysis.
type Report struct {
	Start string `json:"start"`
	End   string `json:"end"`

	Overview          Overview       `json:"overview"`
	Daily             []DaySummary   `json:"daily"`
	CompletionTrend   MovingAverage  `json:"completion_trend"`
	QualityTrend      MovingAverage  `json:"quality_trend"`
	SatisfactionTrend MovingAverage  `json:"satisfaction_trend"`
	ExcellenceTrend   MovingAverage  `json:"excellence_trend"`
	Categories        []CategoryRate `json:"categories"`
	TopPerformers     []TaskInsight  `json:"top_performers"`
	NeedsImprovement  []TaskInsight  `json:"needs_improvement"`
	Streaks           StreakSet      `json:"streaks"`
	Goals             GoalReport     `json:"goals"`
	Energy            EnergyReport   `json:"energy"`
	Productivity      Productivity   `json:"productivity"`
	Weekdays          WeekdayReport  `json:"weekdays"`
	Reading           ReadingReport  `json:"reading"`
}

type Overview struct {
	DaysAnalyzed        int     `json:"days_analyzed"`
	ActiveDays          int     `json:"active_days"` // days with at least one completion row
	AvgCompletionRate   float64 `json:"avg_completion_rate"`
	AvgQuality          float64 `json:"avg_quality"`
	AvgSatisfaction     float64 `json:"avg_satisfaction"`
	AvgStress           float64 `json:"avg_stress"`
	AvgEnergy           float64 `json:"avg_energy"`
	TotalReadingMin     int     `json:"total_reading_min"`
	AvgDailyReadingMin  float64 `json:"avg_daily_reading_min"`
	TotalPages          int     `json:"total_pages"`
	ExerciseDays        int     `json:"exercise_days"`
	ExerciseConsistency float64 `json:"exercise_consistency"`
	ExcellentDays       int     `json:"excellent_days"` // completion rate >= 85
	ExcellenceRate      float64 `json:"excellence_rate"`
	QualityDays         int     `json:"quality_days"` // avg quality >= 8
	QualityConsistency  float64 `json:"quality_consistency"`
	ReadingDays         int     `json:"reading_days"` // >= 30 reading minutes
	ReadingConsistency  float64 `json:"reading_consistency"`
}

// MovingAverage is a 7-day trailing series. The first point lands on the
// seventh day of the range; Trend is the last day of the raw series minus
// the first, so short ranges still report a direction.
type MovingAverage struct {
	Points []TrendPoint `json:"points"`
	Trend  float64      `json:"trend"`
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// CategoryRate measures a category against its schedule: Scheduled counts
// the task-days its tasks were due in the range, and the completion rate is
// completions over that denominator rather than over logged rows.
type CategoryRate struct {
	CategoryID     string  `json:"category_id"`
	Name           string  `json:"name"`
	Scheduled      int     `json:"scheduled"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
	AvgQuality     float64 `json:"avg_quality"`
	AvgDurationMin float64 `json:"avg_duration_min"`
	Consistency    float64 `json:"consistency"` // completed rows / logged rows
}

type TaskInsight struct {
	TaskID         string              `json:"task_id"`
	Name           string              `json:"name"`
	Priority       models.TaskPriority `json:"priority,omitempty"`
	Scheduled      int                 `json:"scheduled"`
	Completed      int                 `json:"completed"`
	CompletionRate float64             `json:"completion_rate"`
	AvgQuality     float64             `json:"avg_quality"`
	Issues         []string            `json:"issues,omitempty"`
}

// Streak is a run of consecutive days satisfying one daily target.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// StreakSet tracks the four daily habit streaks across the range.
type StreakSet struct {
	Completion Streak `json:"completion"` // completion rate >= 85
	Quality    Streak `json:"quality"`    // avg quality >= 8
	Reading    Streak `json:"reading"`    // >= 30 reading minutes
	Exercise   Streak `json:"exercise"`
}

// Goal counts the days in the range that hit one daily target.
type Goal struct {
	Name            string  `json:"name"`
	Target          float64 `json:"target"`
	DaysAchieved    int     `json:"days_achieved"`
	AchievementRate float64 `json:"achievement_rate"` // achieved / days analyzed
	Status          string  `json:"status"`           // excellent, good, needs_improvement
}

type GoalReport struct {
	Goals        []Goal  `json:"goals"`
	OverallScore float64 `json:"overall_score"` // mean of the achievement rates
}

// EnergyReport summarizes the morning and evening energy readings. Stability
// maps the variance of the daily energy change onto a 0-100 score: a
// constant change scores 100, each unit of variance costs 10.
type EnergyReport struct {
	AvgMorning float64         `json:"avg_morning"`
	AvgEvening float64         `json:"avg_evening"`
	AvgChange  float64         `json:"avg_change"`
	Stability  float64         `json:"stability"`
	ByWeekday  []WeekdayEnergy `json:"by_weekday"`
}

type WeekdayEnergy struct {
	Weekday time.Weekday `json:"weekday"`
	Morning float64      `json:"morning"`
	Evening float64      `json:"evening"`
	Change  float64      `json:"change"`
}

type Productivity struct {
	Hours               []HourStat      `json:"hours"`
	MostProductiveDays  []ProductiveDay `json:"most_productive_days"`
	QualityDistribution []QualityBucket `json:"quality_distribution"`
	TimeEfficiency      TimeEfficiency  `json:"time_efficiency"`
}

// HourStat counts completions starting in one hour of the day. The hour
// comes from the actual start when recorded, otherwise from the task's
// scheduled start.
type HourStat struct {
	Hour       int     `json:"hour"`
	Count      int     `json:"count"`
	AvgQuality float64 `json:"avg_quality"`
}

type ProductiveDay struct {
	Date           string  `json:"date"`
	TasksCompleted int     `json:"tasks_completed"`
	AvgQuality     float64 `json:"avg_quality"`
	TotalMinutes   int     `json:"total_minutes"`
}

type QualityBucket struct {
	Score      int     `json:"score"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TimeEfficiency buckets completed tasks by schedule adherence. On time
// means the actual end fell at or before the scheduled end; early and late
// compare the actual duration against the planned one.
type TimeEfficiency struct {
	OnTimePct       float64 `json:"on_time_pct"`
	EarlyPct        float64 `json:"early_pct"`
	LatePct         float64 `json:"late_pct"`
	EfficiencyScore float64 `json:"efficiency_score"` // on time or early, as a share of completions
}

type WeekdayPattern struct {
	Weekday         time.Weekday `json:"weekday"`
	Days            int          `json:"days"`
	AvgCompletion   float64      `json:"avg_completion"`
	AvgQuality      float64      `json:"avg_quality"`
	AvgSatisfaction float64      `json:"avg_satisfaction"`
	AvgReadingMin   float64      `json:"avg_reading_min"`
}

type WeekdayReport struct {
	Patterns   []WeekdayPattern `json:"patterns"`
	BestDay    string           `json:"best_day,omitempty"`
	HardestDay string           `json:"most_challenging_day,omitempty"`
}

type ReadingReport struct {
	TotalMinutes       int               `json:"total_minutes"`
	TotalPages         int               `json:"total_pages"`
	Sessions           int               `json:"sessions"`
	ActiveDays         int               `json:"active_days"`
	AvgSessionMin      float64           `json:"avg_session_min"`
	AvgPagesPerSession float64           `json:"avg_pages_per_session"`
	AvgQuality         float64           `json:"avg_quality"`
	PagesPerHour       float64           `json:"pages_per_hour"`
	BooksInProgress    int               `json:"books_in_progress"`
	BooksCompleted     int               `json:"books_completed"` // completed within the range
	Consistency        float64           `json:"consistency"`     // active days / range days
	DailyPattern       []ReadingWeekday  `json:"daily_pattern"`
	CategoryBreakdown  []ReadingCategory `json:"category_breakdown"`
}

type ReadingWeekday struct {
	Weekday      time.Weekday `json:"weekday"`
	Sessions     int          `json:"sessions"`
	TotalMinutes int          `json:"total_minutes"`
	AvgPages     float64      `json:"avg_pages"`
}

type ReadingCategory struct {
	Category       models.BookCategory `json:"category"`
	Books          int                 `json:"books"`
	TotalPages     int                 `json:"total_pages"`
	CompletedBooks int                 `json:"completed_books"`
}

// Analyze builds the full report for an inclusive date range.
func (s *Service) Analyze(start, end string) (Report, error) {
	startDay, err := utils.ParseDate(start)
	if err != nil {
		return Report{}, errors.Validation("start", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", start))
	}
	endDay, err := utils.ParseDate(end)
	if err != nil {
		return Report{}, errors.Validation("end", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", end))
	}
	if endDay.Before(startDay) {
		return Report{}, errors.Validation("range", fmt.Sprintf("end %s is before start %s", end, start))
	}
	dates := utils.DateRange(startDay, endDay)

	completions, err := s.store.GetCompletionsInRange(start, end)
	if err != nil {
		return Report{}, err
	}
	logs, err := s.store.GetDailyLogsInRange(start, end)
	if err != nil {
		return Report{}, err
	}
	sessions, err := s.store.GetSessionsInRange(start, end)
	if err != nil {
		return Report{}, err
	}
	tasks, err := s.store.GetAllTasks(true)
	if err != nil {
		return Report{}, err
	}
	categories, err := s.store.GetAllCategories(true)
	if err != nil {
		return Report{}, err
	}
	books, err := s.store.GetAllBooks("")
	if err != nil {
		return Report{}, err
	}

	byDate := make(map[string][]models.TaskCompletion)
	for _, c := range completions {
		byDate[c.Date] = append(byDate[c.Date], c)
	}
	logByDate := make(map[string]models.DailyLog, len(logs))
	for _, l := range logs {
		logByDate[l.Date] = l
	}
	sessionsByDate := make(map[string][]models.ReadingSession)
	for _, sess := range sessions {
		sessionsByDate[sess.Date] = append(sessionsByDate[sess.Date], sess)
	}

	report := Report{Start: start, End: end}
	for _, d := range dates {
		date := d.Format(constants.DateFormat)
		report.Daily = append(report.Daily,
			buildDaySummary(date, byDate[date], logByDate[date], sessionsByDate[date]))
	}

	report.Overview = buildOverview(report.Daily, logs)
	report.CompletionTrend = movingAverage(report.Daily, func(d DaySummary) float64 { return d.CompletionRate })
	report.QualityTrend = movingAverage(report.Daily, func(d DaySummary) float64 { return d.AvgQuality })
	report.SatisfactionTrend = movingAverage(report.Daily, func(d DaySummary) float64 {
		if d.Satisfaction == nil {
			return 0
		}
		return float64(*d.Satisfaction)
	})
	report.ExcellenceTrend = movingAverage(report.Daily, func(d DaySummary) float64 { return d.Excellence.Score })
	report.Categories = categoryRates(dates, completions, tasks, categories)
	report.TopPerformers, report.NeedsImprovement = taskInsights(dates, completions, tasks)
	report.Streaks = dailyStreaks(report.Daily)
	report.Goals = goalTracking(report.Daily)
	report.Energy = energyPatterns(logs)
	report.Productivity = productivity(completions, tasks)
	report.Weekdays = weekdayPatterns(report.Daily)
	report.Reading = readingReport(sessions, books, start, end, len(dates))

	return report, nil
}

func buildOverview(daily []DaySummary, logs []models.DailyLog) Overview {
	o := Overview{DaysAnalyzed: len(daily)}

	rateSum, qualitySum := 0.0, 0.0
	scoredDays := 0
	satisfactionSum, satisfactionDays := 0, 0
	for _, d := range daily {
		if d.TotalTasks > 0 {
			o.ActiveDays++
			rateSum += d.CompletionRate
			if d.CompletionRate >= constants.TargetCompletionRate {
				o.ExcellentDays++
			}
		}
		if d.AvgQuality > 0 {
			qualitySum += d.AvgQuality
			scoredDays++
			if d.AvgQuality >= constants.TargetQualityScore {
				o.QualityDays++
			}
		}
		o.TotalReadingMin += d.ReadingMinutes
		o.TotalPages += d.PagesRead
		if d.ReadingMinutes >= constants.TargetReadingMinutes {
			o.ReadingDays++
		}
		if d.ExerciseDone {
			o.ExerciseDays++
		}
		if d.Satisfaction != nil {
			satisfactionSum += *d.Satisfaction
			satisfactionDays++
		}
	}

	if o.ActiveDays > 0 {
		o.AvgCompletionRate = round1(rateSum / float64(o.ActiveDays))
	}
	if scoredDays > 0 {
		o.AvgQuality = round1(qualitySum / float64(scoredDays))
	}
	if satisfactionDays > 0 {
		o.AvgSatisfaction = round1(float64(satisfactionSum) / float64(satisfactionDays))
	}
	if o.DaysAnalyzed > 0 {
		days := float64(o.DaysAnalyzed)
		o.AvgDailyReadingMin = round1(float64(o.TotalReadingMin) / days)
		o.ExerciseConsistency = round1(float64(o.ExerciseDays) / days * 100)
		o.ExcellenceRate = round1(float64(o.ExcellentDays) / days * 100)
		o.QualityConsistency = round1(float64(o.QualityDays) / days * 100)
		o.ReadingConsistency = round1(float64(o.ReadingDays) / days * 100)
	}

	energySum, energyDays := 0.0, 0
	stressSum, stressDays := 0, 0
	for _, l := range logs {
		if avg, ok := l.AvgEnergy(); ok {
			energySum += avg
			energyDays++
		}
		if l.Stress != nil {
			stressSum += *l.Stress
			stressDays++
		}
	}
	if energyDays > 0 {
		o.AvgEnergy = round1(energySum / float64(energyDays))
	}
	if stressDays > 0 {
		o.AvgStress = round1(float64(stressSum) / float64(stressDays))
	}

	return o
}

const trendWindow = 7

func movingAverage(daily []DaySummary, value func(DaySummary) float64) MovingAverage {
	var ma MovingAverage
	if len(daily) == 0 {
		return ma
	}
	ma.Trend = round1(value(daily[len(daily)-1]) - value(daily[0]))
	if len(daily) < trendWindow {
		return ma
	}

	sum := 0.0
	for i, d := range daily {
		sum += value(d)
		if i >= trendWindow {
			sum -= value(daily[i-trendWindow])
		}
		if i >= trendWindow-1 {
			ma.Points = append(ma.Points, TrendPoint{
				Date:  d.Date,
				Value: round1(sum / trendWindow),
			})
		}
	}
	return ma
}

func categoryRates(dates []time.Time, completions []models.TaskCompletion, tasks []models.RoutineTask, categories []models.RoutineCategory) []CategoryRate {
	taskCategory := make(map[string]string, len(tasks))
	for _, t := range tasks {
		taskCategory[t.ID] = t.CategoryID
	}

	type tally struct {
		rate        CategoryRate
		rows        int
		durationSum int
		durationN   int
		qualitySum  int
		qualityN    int
	}
	totals := map[string]*tally{}
	for _, cat := range categories {
		totals[cat.ID] = &tally{rate: CategoryRate{CategoryID: cat.ID, Name: cat.Name}}
	}

	for _, t := range tasks {
		entry, ok := totals[t.CategoryID]
		if !ok {
			continue
		}
		for _, date := range dates {
			if schedule.IsDue(t, date) {
				entry.rate.Scheduled++
			}
		}
	}

	for _, c := range completions {
		entry, ok := totals[taskCategory[c.TaskID]]
		if !ok {
			continue
		}
		entry.rows++
		if c.Status != models.StatusCompleted {
			continue
		}
		entry.rate.Completed++
		if c.QualityScore != nil {
			entry.qualitySum += *c.QualityScore
			entry.qualityN++
		}
		if d, ok := c.ActualDuration(); ok {
			entry.durationSum += d
			entry.durationN++
		}
	}

	var out []CategoryRate
	for _, cat := range categories {
		entry := totals[cat.ID]
		if entry.rate.Scheduled == 0 && entry.rows == 0 {
			continue
		}
		if entry.rate.Scheduled > 0 {
			entry.rate.CompletionRate = round1(float64(entry.rate.Completed) / float64(entry.rate.Scheduled) * 100)
		}
		if entry.qualityN > 0 {
			entry.rate.AvgQuality = round1(float64(entry.qualitySum) / float64(entry.qualityN))
		}
		if entry.durationN > 0 {
			entry.rate.AvgDurationMin = round1(float64(entry.durationSum) / float64(entry.durationN))
		}
		if entry.rows > 0 {
			entry.rate.Consistency = round1(float64(entry.rate.Completed) / float64(entry.rows) * 100)
		}
		out = append(out, entry.rate)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletionRate > out[j].CompletionRate })
	return out
}

const (
	insightLimit       = 5
	improvementRateMax = 80.0
	lowQualityScore    = 6
)

func taskInsights(dates []time.Time, completions []models.TaskCompletion, tasks []models.RoutineTask) (top, needsWork []TaskInsight) {
	type tally struct {
		skipped    int
		postponed  int
		lowQuality int
		qualitySum int
		qualityN   int
		completed  int
		rows       int
	}
	byTask := map[string]*tally{}
	for _, c := range completions {
		entry, ok := byTask[c.TaskID]
		if !ok {
			entry = &tally{}
			byTask[c.TaskID] = entry
		}
		entry.rows++
		switch c.Status {
		case models.StatusCompleted:
			entry.completed++
			if c.QualityScore != nil {
				entry.qualitySum += *c.QualityScore
				entry.qualityN++
				if *c.QualityScore < lowQualityScore {
					entry.lowQuality++
				}
			}
		case models.StatusSkipped:
			entry.skipped++
		case models.StatusPostponed:
			entry.postponed++
		}
	}

	for _, t := range tasks {
		entry, ok := byTask[t.ID]
		if !ok {
			entry = &tally{}
		}
		scheduled := 0
		for _, date := range dates {
			if schedule.IsDue(t, date) {
				scheduled++
			}
		}
		if scheduled == 0 && entry.rows == 0 {
			continue
		}

		insight := TaskInsight{
			TaskID:    t.ID,
			Name:      t.Name,
			Priority:  t.Priority,
			Scheduled: scheduled,
			Completed: entry.completed,
		}
		if scheduled > 0 {
			insight.CompletionRate = round1(float64(entry.completed) / float64(scheduled) * 100)
		}
		if entry.qualityN > 0 {
			insight.AvgQuality = round1(float64(entry.qualitySum) / float64(entry.qualityN))
		}

		if insight.Completed > 0 {
			top = append(top, insight)
		}

		if insight.CompletionRate < improvementRateMax {
			problem := insight
			problem.Issues = append(problem.Issues, fmt.Sprintf("completion rate %.1f%% is below %.0f%%", problem.CompletionRate, improvementRateMax))
			if entry.skipped > 2 {
				problem.Issues = append(problem.Issues, fmt.Sprintf("skipped %d times", entry.skipped))
			}
			if entry.postponed > 2 {
				problem.Issues = append(problem.Issues, fmt.Sprintf("postponed %d times", entry.postponed))
			}
			if entry.lowQuality > 1 {
				problem.Issues = append(problem.Issues, fmt.Sprintf("%d low-quality completions", entry.lowQuality))
			}
			needsWork = append(needsWork, problem)
		}
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].AvgQuality > top[j].AvgQuality })
	if len(top) > insightLimit {
		top = top[:insightLimit]
	}
	sort.SliceStable(needsWork, func(i, j int) bool { return needsWork[i].CompletionRate < needsWork[j].CompletionRate })
	if len(needsWork) > insightLimit {
		needsWork = needsWork[:insightLimit]
	}
	return top, needsWork
}

func dailyStreaks(daily []DaySummary) StreakSet {
	run := func(pred func(DaySummary) bool) Streak {
		outcomes := make([]bool, len(daily))
		for i, d := range daily {
			outcomes[i] = pred(d)
		}
		current, longest := streak(outcomes)
		return Streak{Current: current, Longest: longest}
	}

	return StreakSet{
		Completion: run(func(d DaySummary) bool {
			return d.TotalTasks > 0 && d.CompletionRate >= constants.TargetCompletionRate
		}),
		Quality: run(func(d DaySummary) bool {
			return d.AvgQuality >= constants.TargetQualityScore
		}),
		Reading: run(func(d DaySummary) bool {
			return d.ReadingMinutes >= constants.TargetReadingMinutes
		}),
		Exercise: run(func(d DaySummary) bool { return d.ExerciseDone }),
	}
}

// streak returns the trailing run of satisfied days and the longest run
// anywhere in the sequence.
func streak(outcomes []bool) (current, longest int) {
	run := 0
	for _, done := range outcomes {
		if done {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return run, longest
}

func goalTracking(daily []DaySummary) GoalReport {
	days := len(daily)
	if days == 0 {
		return GoalReport{}
	}

	count := func(pred func(DaySummary) bool) int {
		n := 0
		for _, d := range daily {
			if pred(d) {
				n++
			}
		}
		return n
	}

	goals := []Goal{
		{Name: "task completion", Target: constants.TargetCompletionRate,
			DaysAchieved: count(func(d DaySummary) bool {
				return d.TotalTasks > 0 && d.CompletionRate >= constants.TargetCompletionRate
			})},
		{Name: "quality", Target: constants.TargetQualityScore,
			DaysAchieved: count(func(d DaySummary) bool { return d.AvgQuality >= constants.TargetQualityScore })},
		{Name: "daily reading", Target: constants.TargetReadingMinutes,
			DaysAchieved: count(func(d DaySummary) bool { return d.ReadingMinutes >= constants.TargetReadingMinutes })},
		{Name: "exercise", Target: 1,
			DaysAchieved: count(func(d DaySummary) bool { return d.ExerciseDone })},
		{Name: "satisfaction", Target: float64(constants.TargetSatisfaction),
			DaysAchieved: count(func(d DaySummary) bool {
				return d.Satisfaction != nil && *d.Satisfaction >= constants.TargetSatisfaction
			})},
	}

	rateSum := 0.0
	for i := range goals {
		g := &goals[i]
		g.AchievementRate = round1(float64(g.DaysAchieved) / float64(days) * 100)
		rateSum += g.AchievementRate
		switch {
		case g.AchievementRate >= 85:
			g.Status = "excellent"
		case g.AchievementRate >= 70:
			g.Status = "good"
		default:
			g.Status = "needs_improvement"
		}
	}

	return GoalReport{Goals: goals, OverallScore: round1(rateSum / float64(len(goals)))}
}

func energyPatterns(logs []models.DailyLog) EnergyReport {
	var r EnergyReport

	type bucket struct {
		morningSum, morningN int
		eveningSum, eveningN int
		changeSum, changeN   int
	}
	var total bucket
	byDay := [7]bucket{}
	var changes []float64

	for _, l := range logs {
		wd := -1
		if day, err := utils.ParseDate(l.Date); err == nil {
			wd = int(day.Weekday())
		}
		add := func(b *bucket) {
			if l.EnergyMorning != nil {
				b.morningSum += *l.EnergyMorning
				b.morningN++
			}
			if l.EnergyEvening != nil {
				b.eveningSum += *l.EnergyEvening
				b.eveningN++
			}
			if change, ok := l.EnergyChange(); ok {
				b.changeSum += change
				b.changeN++
			}
		}
		add(&total)
		if wd >= 0 {
			add(&byDay[wd])
		}
		if change, ok := l.EnergyChange(); ok {
			changes = append(changes, float64(change))
		}
	}

	avg := func(sum, n int) float64 {
		if n == 0 {
			return 0
		}
		return round1(float64(sum) / float64(n))
	}
	r.AvgMorning = avg(total.morningSum, total.morningN)
	r.AvgEvening = avg(total.eveningSum, total.eveningN)
	r.AvgChange = avg(total.changeSum, total.changeN)
	r.Stability = stabilityScore(changes)

	for wd := 0; wd < 7; wd++ {
		b := byDay[wd]
		if b.morningN == 0 && b.eveningN == 0 {
			continue
		}
		r.ByWeekday = append(r.ByWeekday, WeekdayEnergy{
			Weekday: time.Weekday(wd),
			Morning: avg(b.morningSum, b.morningN),
			Evening: avg(b.eveningSum, b.eveningN),
			Change:  avg(b.changeSum, b.changeN),
		})
	}
	return r
}

// stabilityScore maps the variance of the daily energy change onto 0-100.
func stabilityScore(changes []float64) float64 {
	if len(changes) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range changes {
		mean += v
	}
	mean /= float64(len(changes))

	variance := 0.0
	for _, v := range changes {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(changes))

	score := 100 - 10*variance
	if score < 0 {
		score = 0
	}
	return round1(score)
}

func productivity(completions []models.TaskCompletion, tasks []models.RoutineTask) Productivity {
	taskByID := make(map[string]models.RoutineTask, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}

	type hourTally struct {
		count      int
		qualitySum int
		qualityN   int
	}
	type dayTally struct {
		completed  int
		qualitySum int
		qualityN   int
		minutes    int
	}
	hours := map[int]*hourTally{}
	days := map[string]*dayTally{}
	scores := [11]int{}
	scored := 0

	total, onTime, early, late, efficient := 0, 0, 0, 0, 0
	for _, c := range completions {
		if c.Status != models.StatusCompleted {
			continue
		}
		total++
		task := taskByID[c.TaskID]

		if hour, ok := startHour(c, task); ok {
			entry := hours[hour]
			if entry == nil {
				entry = &hourTally{}
				hours[hour] = entry
			}
			entry.count++
			if c.QualityScore != nil {
				entry.qualitySum += *c.QualityScore
				entry.qualityN++
			}
		}

		day := days[c.Date]
		if day == nil {
			day = &dayTally{}
			days[c.Date] = day
		}
		day.completed++
		if c.QualityScore != nil {
			day.qualitySum += *c.QualityScore
			day.qualityN++
			if *c.QualityScore >= 1 && *c.QualityScore <= 10 {
				scores[*c.QualityScore]++
				scored++
			}
		}
		if d, ok := c.ActualDuration(); ok {
			day.minutes += d
		}

		wasOnTime := c.ActualEnd != nil && task.ScheduledEnd != "" &&
			c.ActualEnd.Format("15:04") <= task.ScheduledEnd
		wasEarly := false
		if actual, ok := c.ActualDuration(); ok && task.DurationMin > 0 {
			if actual < task.DurationMin {
				early++
				wasEarly = true
			} else if actual > task.DurationMin {
				late++
			}
		}
		if wasOnTime {
			onTime++
		}
		if wasOnTime || wasEarly {
			efficient++
		}
	}

	p := Productivity{}
	var hourKeys []int
	for h := range hours {
		hourKeys = append(hourKeys, h)
	}
	sort.Ints(hourKeys)
	for _, h := range hourKeys {
		entry := hours[h]
		stat := HourStat{Hour: h, Count: entry.count}
		if entry.qualityN > 0 {
			stat.AvgQuality = round1(float64(entry.qualitySum) / float64(entry.qualityN))
		}
		p.Hours = append(p.Hours, stat)
	}

	for date, day := range days {
		pd := ProductiveDay{Date: date, TasksCompleted: day.completed, TotalMinutes: day.minutes}
		if day.qualityN > 0 {
			pd.AvgQuality = round1(float64(day.qualitySum) / float64(day.qualityN))
		}
		p.MostProductiveDays = append(p.MostProductiveDays, pd)
	}
	sort.SliceStable(p.MostProductiveDays, func(i, j int) bool {
		a, b := p.MostProductiveDays[i], p.MostProductiveDays[j]
		if a.AvgQuality != b.AvgQuality {
			return a.AvgQuality > b.AvgQuality
		}
		return a.Date < b.Date
	})
	if len(p.MostProductiveDays) > insightLimit {
		p.MostProductiveDays = p.MostProductiveDays[:insightLimit]
	}

	for score := 1; score <= 10; score++ {
		bucket := QualityBucket{Score: score, Count: scores[score]}
		if scored > 0 {
			bucket.Percentage = round1(float64(scores[score]) / float64(scored) * 100)
		}
		p.QualityDistribution = append(p.QualityDistribution, bucket)
	}

	if total > 0 {
		p.TimeEfficiency = TimeEfficiency{
			OnTimePct:       round1(float64(onTime) / float64(total) * 100),
			EarlyPct:        round1(float64(early) / float64(total) * 100),
			LatePct:         round1(float64(late) / float64(total) * 100),
			EfficiencyScore: round1(float64(efficient) / float64(total) * 100),
		}
	}
	return p
}

// startHour resolves the hour a completion started: the recorded actual
// start wins, the task's scheduled start is the fallback.
func startHour(c models.TaskCompletion, task models.RoutineTask) (int, bool) {
	if c.ActualStart != nil {
		return c.ActualStart.Hour(), true
	}
	if task.ScheduledStart != "" {
		if at, err := utils.ParseTime(task.ScheduledStart); err == nil {
			return at.Hour(), true
		}
	}
	return 0, false
}

func weekdayPatterns(daily []DaySummary) WeekdayReport {
	type bucket struct {
		days            int
		completionSum   float64
		qualitySum      float64
		satisfactionSum int
		satisfactionN   int
		readingSum      int
	}
	byDay := [7]bucket{}
	for _, d := range daily {
		day, err := utils.ParseDate(d.Date)
		if err != nil || d.TotalTasks == 0 {
			continue
		}
		b := &byDay[int(day.Weekday())]
		b.days++
		b.completionSum += d.CompletionRate
		b.qualitySum += d.AvgQuality
		b.readingSum += d.ReadingMinutes
		if d.Satisfaction != nil {
			b.satisfactionSum += *d.Satisfaction
			b.satisfactionN++
		}
	}

	var r WeekdayReport
	best, hardest := -1.0, -1.0
	for wd := 0; wd < 7; wd++ {
		b := byDay[wd]
		if b.days == 0 {
			continue
		}
		pattern := WeekdayPattern{
			Weekday:       time.Weekday(wd),
			Days:          b.days,
			AvgCompletion: round1(b.completionSum / float64(b.days)),
			AvgQuality:    round1(b.qualitySum / float64(b.days)),
			AvgReadingMin: round1(float64(b.readingSum) / float64(b.days)),
		}
		if b.satisfactionN > 0 {
			pattern.AvgSatisfaction = round1(float64(b.satisfactionSum) / float64(b.satisfactionN))
		}
		r.Patterns = append(r.Patterns, pattern)

		if best < 0 || pattern.AvgCompletion > best {
			best = pattern.AvgCompletion
			r.BestDay = pattern.Weekday.String()
		}
		if hardest < 0 || pattern.AvgCompletion < hardest {
			hardest = pattern.AvgCompletion
			r.HardestDay = pattern.Weekday.String()
		}
	}
	return r
}

func readingReport(sessions []models.ReadingSession, books []models.Book, start, end string, rangeDays int) ReadingReport {
	r := ReadingReport{Sessions: len(sessions)}

	type dayTally struct {
		sessions int
		minutes  int
		pages    int
	}
	byWeekday := [7]dayTally{}
	days := map[string]bool{}
	qualitySum, qualityN := 0.0, 0
	for _, sess := range sessions {
		r.TotalMinutes += sess.DurationMin
		r.TotalPages += sess.PagesRead
		days[sess.Date] = true
		if q, ok := sess.QualityScore(); ok {
			qualitySum += q
			qualityN++
		}
		if day, err := utils.ParseDate(sess.Date); err == nil {
			b := &byWeekday[int(day.Weekday())]
			b.sessions++
			b.minutes += sess.DurationMin
			b.pages += sess.PagesRead
		}
	}
	r.ActiveDays = len(days)
	if r.Sessions > 0 {
		r.AvgSessionMin = round1(float64(r.TotalMinutes) / float64(r.Sessions))
		r.AvgPagesPerSession = round1(float64(r.TotalPages) / float64(r.Sessions))
	}
	if qualityN > 0 {
		r.AvgQuality = round1(qualitySum / float64(qualityN))
	}
	if r.TotalMinutes > 0 {
		r.PagesPerHour = round1(float64(r.TotalPages) / float64(r.TotalMinutes) * 60)
	}
	if rangeDays > 0 {
		r.Consistency = round1(float64(r.ActiveDays) / float64(rangeDays) * 100)
	}

	for wd := 0; wd < 7; wd++ {
		b := byWeekday[wd]
		if b.sessions == 0 {
			continue
		}
		r.DailyPattern = append(r.DailyPattern, ReadingWeekday{
			Weekday:      time.Weekday(wd),
			Sessions:     b.sessions,
			TotalMinutes: b.minutes,
			AvgPages:     round1(float64(b.pages) / float64(b.sessions)),
		})
	}

	byCategory := map[models.BookCategory]*ReadingCategory{}
	var categoryOrder []models.BookCategory
	for _, book := range books {
		category := book.Category
		if category == "" {
			category = models.CategoryOther
		}
		entry, ok := byCategory[category]
		if !ok {
			entry = &ReadingCategory{Category: category}
			byCategory[category] = entry
			categoryOrder = append(categoryOrder, category)
		}
		entry.Books++
		entry.TotalPages += book.TotalPages
		if book.Status == models.BookCompleted {
			entry.CompletedBooks++
		}

		if book.Status == models.BookReading {
			r.BooksInProgress++
		}
		if book.Status == models.BookCompleted &&
			book.CompletedDate != "" && book.CompletedDate >= start && book.CompletedDate <= end {
			r.BooksCompleted++
		}
	}
	sort.Slice(categoryOrder, func(i, j int) bool { return categoryOrder[i] < categoryOrder[j] })
	for _, category := range categoryOrder {
		r.CategoryBreakdown = append(r.CategoryBreakdown, *byCategory[category])
	}

	return r
}
