package metrics

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/schedule"
	"github.com/mholloway/cadence/internal/storage/sqlite"
)

func intp(v int) *int { return &v }

func TestStreak(t *testing.T) {
	tests := []struct {
		name             string
		outcomes         []bool
		current, longest int
	}{
		{"empty", nil, 0, 0},
		{"all completed", []bool{true, true, true}, 3, 3},
		{"broken runs", []bool{true, true, false, true, true, true, false, true, true, true}, 3, 3},
		{"ends on miss", []bool{true, true, false}, 0, 2},
		{"single day", []bool{true}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := streak(tt.outcomes)
			if current != tt.current || longest != tt.longest {
				t.Errorf("streak() = (%d, %d), want (%d, %d)", current, longest, tt.current, tt.longest)
			}
		})
	}
}

func TestMovingAverage(t *testing.T) {
	// Ten days ramping 10..100: the first window averages 10..70, the last
	// averages 40..100.
	var daily []DaySummary
	for i := 0; i < 10; i++ {
		daily = append(daily, DaySummary{
			Date:           fmt.Sprintf("2026-03-%02d", i+1),
			CompletionRate: float64((i + 1) * 10),
		})
	}

	ma := movingAverage(daily, func(d DaySummary) float64 { return d.CompletionRate })
	if len(ma.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(ma.Points))
	}
	if ma.Points[0].Date != "2026-03-07" {
		t.Errorf("first point should land on day seven, got %s", ma.Points[0].Date)
	}
	if ma.Points[0].Value != 40 {
		t.Errorf("first window = %v, want 40", ma.Points[0].Value)
	}
	if ma.Points[3].Value != 70 {
		t.Errorf("last window = %v, want 70", ma.Points[3].Value)
	}
	// The trend compares the raw series endpoints: 100 - 10.
	if ma.Trend != 90 {
		t.Errorf("trend = %v, want 90", ma.Trend)
	}
}

func TestMovingAverageShortRange(t *testing.T) {
	daily := []DaySummary{{CompletionRate: 50}, {CompletionRate: 60}}
	ma := movingAverage(daily, func(d DaySummary) float64 { return d.CompletionRate })
	if len(ma.Points) != 0 {
		t.Errorf("ranges shorter than a week should produce no points, got %+v", ma)
	}
	// The first-to-last delta still reports a direction.
	if ma.Trend != 10 {
		t.Errorf("trend = %v, want 10", ma.Trend)
	}
}

func TestBuildDaySummary(t *testing.T) {
	completions := []models.TaskCompletion{
		{Status: models.StatusCompleted, QualityScore: intp(9)},
		{Status: models.StatusCompleted, QualityScore: intp(8)},
		{Status: models.StatusCompleted}, // no score recorded
		{Status: models.StatusSkipped},
		{Status: models.StatusPostponed},
		{Status: models.StatusNotStarted},
	}
	log := models.DailyLog{
		EnergyMorning:     intp(6),
		EnergyEvening:     intp(6),
		ExerciseCompleted: true,
		Satisfaction:      intp(9),
	}
	sessions := []models.ReadingSession{
		{DurationMin: 20, PagesRead: 15},
		{DurationMin: 15, PagesRead: 10},
	}

	d := buildDaySummary("2026-03-02", completions, log, sessions)

	if d.TotalTasks != 6 || d.CompletedTasks != 3 || d.SkippedTasks != 1 || d.PostponedTasks != 1 {
		t.Errorf("counts wrong: %+v", d)
	}
	if d.CompletionRate != 50.0 {
		t.Errorf("completion rate = %v, want 50.0", d.CompletionRate)
	}
	if d.AvgQuality != 8.5 {
		t.Errorf("avg quality = %v, want 8.5 (unscored completions excluded)", d.AvgQuality)
	}
	if d.ReadingMinutes != 35 || d.PagesRead != 25 {
		t.Errorf("reading = %d min / %d pages", d.ReadingMinutes, d.PagesRead)
	}
	if d.EnergyChange == nil || *d.EnergyChange != 0 {
		t.Errorf("energy change = %v, want 0", d.EnergyChange)
	}

	// 50% completion misses, quality 8.5 hits, 35 reading minutes hit,
	// exercise hits, energy 0 >= -1 hits, satisfaction 9 hits: 5 of 6.
	e := d.Excellence
	if e.CompletionMet {
		t.Error("completion target should be missed at 50%")
	}
	if !e.QualityMet || !e.ReadingMet || !e.ExerciseMet || !e.EnergyMet || !e.SatisfactionMet {
		t.Errorf("excellence checklist: %+v", e)
	}
	if e.Score != 83.3 {
		t.Errorf("excellence score = %v, want 83.3", e.Score)
	}
}

func TestBuildDaySummaryEmpty(t *testing.T) {
	d := buildDaySummary("2026-03-02", nil, models.DailyLog{}, nil)
	if d.CompletionRate != 0 || d.AvgQuality != 0 {
		t.Errorf("empty day should score zero: %+v", d)
	}
	if d.Excellence.EnergyMet || d.Excellence.SatisfactionMet {
		t.Errorf("missing readings should not satisfy targets: %+v", d.Excellence)
	}
}

func TestEnergyPatterns(t *testing.T) {
	// Morning 6, evening 7 every day: change is a constant +1, variance 0.
	flat := []models.DailyLog{
		{Date: "2026-03-02", EnergyMorning: intp(6), EnergyEvening: intp(7)},
		{Date: "2026-03-03", EnergyMorning: intp(6), EnergyEvening: intp(7)},
		{Date: "2026-03-04", EnergyMorning: intp(6), EnergyEvening: intp(7)},
	}
	r := energyPatterns(flat)
	if r.Stability != 100 {
		t.Errorf("constant change should score 100, got %v", r.Stability)
	}
	if r.AvgMorning != 6 || r.AvgEvening != 7 || r.AvgChange != 1 {
		t.Errorf("energy averages: %+v", r)
	}
	if len(r.ByWeekday) != 3 {
		t.Fatalf("expected 3 weekday entries, got %d", len(r.ByWeekday))
	}
	if r.ByWeekday[0].Weekday != time.Monday || r.ByWeekday[0].Change != 1 {
		t.Errorf("weekday energy: %+v", r.ByWeekday[0])
	}

	// Changes -2 and +2: mean 0, variance 4, score 100 - 40 = 60. The level
	// itself is steady at 7 on average, so a level-based score would be
	// misleadingly high.
	swingy := []models.DailyLog{
		{Date: "2026-03-02", EnergyMorning: intp(8), EnergyEvening: intp(6)},
		{Date: "2026-03-03", EnergyMorning: intp(6), EnergyEvening: intp(8)},
	}
	if got := energyPatterns(swingy).Stability; got != 60 {
		t.Errorf("stability = %v, want 60", got)
	}

	if got := energyPatterns(nil).Stability; got != 0 {
		t.Errorf("no readings should score 0, got %v", got)
	}
}

func TestGoalTracking(t *testing.T) {
	// Seven days: six hit every target, the seventh misses completion and
	// satisfaction.
	var daily []DaySummary
	for i := 0; i < 7; i++ {
		d := DaySummary{
			TotalTasks:     4,
			CompletionRate: 100,
			AvgQuality:     8,
			ReadingMinutes: 30,
			ExerciseDone:   true,
			Satisfaction:   intp(9),
		}
		if i == 6 {
			d.CompletionRate = 50
			d.Satisfaction = intp(5)
		}
		daily = append(daily, d)
	}

	r := goalTracking(daily)
	if len(r.Goals) != 5 {
		t.Fatalf("expected 5 goals, got %d", len(r.Goals))
	}
	for _, g := range r.Goals {
		switch g.Name {
		case "task completion", "satisfaction":
			if g.DaysAchieved != 6 || g.AchievementRate != 85.7 || g.Status != "excellent" {
				t.Errorf("goal %s = %+v, want 6 days at 85.7%%", g.Name, g)
			}
		default:
			if g.DaysAchieved != 7 || g.AchievementRate != 100 || g.Status != "excellent" {
				t.Errorf("goal %s = %+v, want 7 days at 100%%", g.Name, g)
			}
		}
	}
	// (85.7 + 100 + 100 + 100 + 85.7) / 5
	if r.OverallScore != 94.3 {
		t.Errorf("overall score = %v, want 94.3", r.OverallScore)
	}
}

func TestGoalTrackingStatuses(t *testing.T) {
	// Five of seven reading days is 71.4% (good); two of seven exercise
	// days is 28.6% (needs_improvement).
	var daily []DaySummary
	for i := 0; i < 7; i++ {
		d := DaySummary{ReadingMinutes: 30, ExerciseDone: i < 2}
		if i >= 5 {
			d.ReadingMinutes = 10
		}
		daily = append(daily, d)
	}

	r := goalTracking(daily)
	byName := map[string]Goal{}
	for _, g := range r.Goals {
		byName[g.Name] = g
	}
	if g := byName["daily reading"]; g.Status != "good" || g.AchievementRate != 71.4 {
		t.Errorf("reading goal = %+v, want good at 71.4%%", g)
	}
	if g := byName["exercise"]; g.Status != "needs_improvement" || g.AchievementRate != 28.6 {
		t.Errorf("exercise goal = %+v, want needs_improvement at 28.6%%", g)
	}

	if r := goalTracking(nil); len(r.Goals) != 0 || r.OverallScore != 0 {
		t.Errorf("empty range should produce no goals, got %+v", r)
	}
}

func TestDailyStreaks(t *testing.T) {
	mk := func(rate float64, quality float64, reading int, exercise bool) DaySummary {
		return DaySummary{
			TotalTasks:     2,
			CompletionRate: rate,
			AvgQuality:     quality,
			ReadingMinutes: reading,
			ExerciseDone:   exercise,
		}
	}
	daily := []DaySummary{
		mk(100, 9, 40, true),
		mk(100, 9, 40, true),
		mk(50, 7, 10, false), // breaks everything
		mk(90, 8, 30, true),
		mk(85, 8, 35, false),
	}

	s := dailyStreaks(daily)
	if s.Completion.Current != 2 || s.Completion.Longest != 2 {
		t.Errorf("completion streak = %+v, want current 2 longest 2", s.Completion)
	}
	if s.Quality.Current != 2 || s.Quality.Longest != 2 {
		t.Errorf("quality streak = %+v", s.Quality)
	}
	if s.Reading.Current != 2 || s.Reading.Longest != 2 {
		t.Errorf("reading streak = %+v", s.Reading)
	}
	if s.Exercise.Current != 0 || s.Exercise.Longest != 2 {
		t.Errorf("exercise streak = %+v, want current 0 longest 2", s.Exercise)
	}
}

func TestAnalyze(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "cadence.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	if err := store.SaveCategory(models.RoutineCategory{ID: "cat-1", Name: "Focus", Active: true, CreatedAt: now}); err != nil {
		t.Fatal(err)
	}
	taskID := uuid.New().String()
	if err := store.SaveTask(models.RoutineTask{
		ID: taskID, CategoryID: "cat-1", Name: "Writing", DurationMin: 60,
		Days: schedule.EveryDay(), Active: true, CreatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}

	// Seven days: completed on five, skipped on two.
	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, i).Format("2006-01-02")
		c := models.TaskCompletion{
			ID: uuid.New().String(), TaskID: taskID, Date: date,
			Status: models.StatusCompleted, Completed: true, QualityScore: intp(8),
			CreatedAt: now, UpdatedAt: now,
		}
		if i == 2 || i == 5 {
			c.Status = models.StatusSkipped
			c.Completed = false
			c.QualityScore = nil
		}
		if err := store.SaveCompletion(c); err != nil {
			t.Fatal(err)
		}
		if err := store.SaveDailyLog(models.DailyLog{
			ID: uuid.New().String(), Date: date,
			EnergyMorning: intp(6), EnergyEvening: intp(7),
			ExerciseCompleted: i%2 == 0,
			Satisfaction:      intp(8),
			CreatedAt:         now, UpdatedAt: now,
		}); err != nil {
			t.Fatal(err)
		}
	}

	svc := New(store)
	report, err := svc.Analyze("2026-03-02", "2026-03-08")
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	if report.Overview.DaysAnalyzed != 7 || report.Overview.ActiveDays != 7 {
		t.Errorf("overview days: %+v", report.Overview)
	}
	// Five days at 100%, two at 0%: mean is 71.4.
	if report.Overview.AvgCompletionRate != 71.4 {
		t.Errorf("avg completion rate = %v, want 71.4", report.Overview.AvgCompletionRate)
	}
	if report.Overview.AvgQuality != 8.0 {
		t.Errorf("avg quality = %v, want 8.0", report.Overview.AvgQuality)
	}
	if report.Overview.ExerciseDays != 4 {
		t.Errorf("exercise days = %d, want 4", report.Overview.ExerciseDays)
	}
	// Five days at 100% completion hit the excellence bar.
	if report.Overview.ExcellentDays != 5 || report.Overview.ExcellenceRate != 71.4 {
		t.Errorf("excellent days = %d (%.1f%%), want 5 (71.4%%)", report.Overview.ExcellentDays, report.Overview.ExcellenceRate)
	}
	if report.Overview.QualityDays != 5 || report.Overview.QualityConsistency != 71.4 {
		t.Errorf("quality days = %d (%.1f%%), want 5 (71.4%%)", report.Overview.QualityDays, report.Overview.QualityConsistency)
	}
	if report.Overview.ReadingDays != 0 || report.Overview.ReadingConsistency != 0 {
		t.Errorf("reading days: %+v", report.Overview)
	}

	if len(report.CompletionTrend.Points) != 1 {
		t.Fatalf("expected one trend point for a 7-day range, got %d", len(report.CompletionTrend.Points))
	}
	if report.CompletionTrend.Points[0].Value != 71.4 {
		t.Errorf("trend point = %v, want 71.4", report.CompletionTrend.Points[0].Value)
	}
	// Day one and day seven were both fully completed.
	if report.CompletionTrend.Trend != 0 {
		t.Errorf("completion trend = %v, want 0", report.CompletionTrend.Trend)
	}
	if report.QualityTrend.Trend != 0 || len(report.QualityTrend.Points) != 1 {
		t.Errorf("quality trend: %+v", report.QualityTrend)
	}
	if report.SatisfactionTrend.Trend != 0 {
		t.Errorf("satisfaction trend: %+v", report.SatisfactionTrend)
	}

	// The task was due all seven days and completed on five.
	if len(report.Categories) != 1 {
		t.Fatalf("categories: %+v", report.Categories)
	}
	cat := report.Categories[0]
	if cat.Scheduled != 7 || cat.Completed != 5 || cat.CompletionRate != 71.4 {
		t.Errorf("category rate = %+v, want 5/7 at 71.4%%", cat)
	}
	if cat.AvgQuality != 8.0 {
		t.Errorf("category quality = %v, want 8.0", cat.AvgQuality)
	}

	if len(report.TopPerformers) != 1 || report.TopPerformers[0].AvgQuality != 8.0 {
		t.Errorf("top performers: %+v", report.TopPerformers)
	}
	if report.TopPerformers[0].Scheduled != 7 || report.TopPerformers[0].CompletionRate != 71.4 {
		t.Errorf("top performer rate = %+v, want 5/7 at 71.4%%", report.TopPerformers[0])
	}
	// 71.4% < 80% puts the task on the improvement list.
	if len(report.NeedsImprovement) != 1 {
		t.Fatalf("needs improvement: %+v", report.NeedsImprovement)
	}

	// Completion and quality both track T T F T T F T.
	if report.Streaks.Completion.Current != 1 || report.Streaks.Completion.Longest != 2 {
		t.Errorf("completion streak = %+v, want current 1 longest 2", report.Streaks.Completion)
	}
	if report.Streaks.Quality.Current != 1 || report.Streaks.Quality.Longest != 2 {
		t.Errorf("quality streak = %+v", report.Streaks.Quality)
	}
	if report.Streaks.Exercise.Longest != 1 {
		t.Errorf("exercise streak = %+v, want longest 1", report.Streaks.Exercise)
	}
	if report.Streaks.Reading.Longest != 0 {
		t.Errorf("reading streak = %+v, want 0 with no sessions", report.Streaks.Reading)
	}

	// Morning 6, evening 7 every day: constant change, stability 100.
	if report.Energy.Stability != 100 {
		t.Errorf("energy stability = %v, want 100 for a constant change", report.Energy.Stability)
	}
	if report.Energy.AvgChange != 1 {
		t.Errorf("avg energy change = %v, want 1", report.Energy.AvgChange)
	}

	if len(report.Goals.Goals) != 5 {
		t.Fatalf("goals: %+v", report.Goals)
	}
	for _, g := range report.Goals.Goals {
		if g.Name == "task completion" && (g.DaysAchieved != 5 || g.AchievementRate != 71.4) {
			t.Errorf("completion goal = %+v, want 5 days at 71.4%%", g)
		}
		if g.Name == "satisfaction" && g.AchievementRate != 100 {
			t.Errorf("satisfaction goal = %+v, want 100%%", g)
		}
	}

	if len(report.Weekdays.Patterns) != 7 {
		t.Errorf("weekday patterns: %+v", report.Weekdays)
	}
	if report.Weekdays.BestDay == "" || report.Weekdays.HardestDay == "" {
		t.Errorf("best/hardest day unset: %+v", report.Weekdays)
	}
}

func TestAnalyzeRejectsBadRange(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "cadence.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := New(store)
	if _, err := svc.Analyze("2026-03-08", "2026-03-02"); err == nil {
		t.Error("Analyze() with end before start should fail")
	}
	if _, err := svc.Analyze("bad", "2026-03-02"); err == nil {
		t.Error("Analyze() with malformed date should fail")
	}
}

func weekOf(t *testing.T, start string) []time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatal(err)
	}
	var dates []time.Time
	for i := 0; i < 7; i++ {
		dates = append(dates, day.AddDate(0, 0, i))
	}
	return dates
}

func TestCategoryRatesUseScheduledDays(t *testing.T) {
	// 2026-03-02 is a Monday. A mon/wed/fri task is due three times that
	// week; two completions out of three scheduled days is 66.7%, even
	// though both logged rows were completed.
	dates := weekOf(t, "2026-03-02")
	tasks := []models.RoutineTask{{
		ID: "task-1", CategoryID: "cat-1", Name: "Writing",
		Days: schedule.NewWeekdaySet(time.Monday, time.Wednesday, time.Friday), Active: true,
	}}
	categories := []models.RoutineCategory{{ID: "cat-1", Name: "Focus"}}
	completions := []models.TaskCompletion{
		{TaskID: "task-1", Date: "2026-03-02", Status: models.StatusCompleted, QualityScore: intp(9), DurationMin: intp(60)},
		{TaskID: "task-1", Date: "2026-03-04", Status: models.StatusCompleted, QualityScore: intp(7), DurationMin: intp(40)},
	}

	rates := categoryRates(dates, completions, tasks, categories)
	if len(rates) != 1 {
		t.Fatalf("expected 1 category, got %d", len(rates))
	}
	got := rates[0]
	if got.Scheduled != 3 || got.Completed != 2 {
		t.Errorf("scheduled/completed = %d/%d, want 3/2", got.Scheduled, got.Completed)
	}
	if got.CompletionRate != 66.7 {
		t.Errorf("completion rate = %v, want 66.7 (scheduled-day denominator)", got.CompletionRate)
	}
	if got.AvgQuality != 8 || got.AvgDurationMin != 50 {
		t.Errorf("quality/duration = %v/%v, want 8/50", got.AvgQuality, got.AvgDurationMin)
	}
	// All logged rows completed.
	if got.Consistency != 100 {
		t.Errorf("consistency = %v, want 100", got.Consistency)
	}
}

func TestTaskInsightsScheduledDenominator(t *testing.T) {
	dates := weekOf(t, "2026-03-02")
	tasks := []models.RoutineTask{{
		ID: "task-1", CategoryID: "cat-1", Name: "Writing", Priority: models.PriorityHigh,
		Days: schedule.EveryDay(), Active: true,
	}}
	// Four completed rows against seven due days: 57.1%, not the 100% a
	// row-count denominator would report.
	var completions []models.TaskCompletion
	for _, date := range []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"} {
		completions = append(completions, models.TaskCompletion{
			TaskID: "task-1", Date: date, Status: models.StatusCompleted, QualityScore: intp(8),
		})
	}

	top, needsWork := taskInsights(dates, completions, tasks)
	if len(top) != 1 || top[0].CompletionRate != 57.1 {
		t.Fatalf("top = %+v, want one task at 57.1%%", top)
	}
	if top[0].Scheduled != 7 || top[0].Completed != 4 {
		t.Errorf("scheduled/completed = %d/%d, want 7/4", top[0].Scheduled, top[0].Completed)
	}
	if top[0].Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high", top[0].Priority)
	}
	if len(needsWork) != 1 {
		t.Errorf("57.1%% should need improvement: %+v", needsWork)
	}
}

func TestTaskInsightsTruncation(t *testing.T) {
	dates := weekOf(t, "2026-03-02")
	var tasks []models.RoutineTask
	var completions []models.TaskCompletion
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("task-%d", i)
		tasks = append(tasks, models.RoutineTask{
			ID: id, CategoryID: "cat-1", Name: id, Days: schedule.EveryDay(), Active: true,
		})
		// One completion against seven due days keeps every task under 80%.
		completions = append(completions, models.TaskCompletion{
			TaskID: id, Date: "2026-03-02", Status: models.StatusCompleted, QualityScore: intp(i + 1),
		})
	}

	top, needsWork := taskInsights(dates, completions, tasks)
	if len(top) != 5 {
		t.Errorf("top performers should cap at 5, got %d", len(top))
	}
	if len(needsWork) != 5 {
		t.Errorf("needs-improvement should cap at 5, got %d", len(needsWork))
	}
}

func TestProductivity(t *testing.T) {
	at := func(hour, min int) *time.Time {
		tm := time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
		return &tm
	}
	tasks := []models.RoutineTask{
		{ID: "task-1", Name: "Writing", ScheduledStart: "09:00", ScheduledEnd: "10:00", DurationMin: 60, Active: true},
		{ID: "task-2", Name: "Review", ScheduledStart: "14:00", ScheduledEnd: "14:30", DurationMin: 30, Active: true},
	}
	completions := []models.TaskCompletion{
		// Started and ended within schedule, faster than planned.
		{TaskID: "task-1", Date: "2026-03-02", Status: models.StatusCompleted,
			ActualStart: at(9, 5), ActualEnd: at(9, 50), QualityScore: intp(9)},
		// No actual start: falls back to the 14:00 scheduled hour. Ran
		// long with no recorded end.
		{TaskID: "task-2", Date: "2026-03-03", Status: models.StatusCompleted,
			DurationMin: intp(45), QualityScore: intp(6)},
		{TaskID: "task-1", Date: "2026-03-03", Status: models.StatusSkipped},
	}

	p := productivity(completions, tasks)

	if len(p.Hours) != 2 {
		t.Fatalf("hours: %+v", p.Hours)
	}
	if p.Hours[0].Hour != 9 || p.Hours[0].Count != 1 || p.Hours[0].AvgQuality != 9 {
		t.Errorf("hour 9 = %+v", p.Hours[0])
	}
	if p.Hours[1].Hour != 14 || p.Hours[1].Count != 1 {
		t.Errorf("scheduled-start fallback missing: %+v", p.Hours[1])
	}

	if len(p.MostProductiveDays) != 2 {
		t.Fatalf("productive days: %+v", p.MostProductiveDays)
	}
	if p.MostProductiveDays[0].Date != "2026-03-02" || p.MostProductiveDays[0].AvgQuality != 9 {
		t.Errorf("best day = %+v", p.MostProductiveDays[0])
	}

	if len(p.QualityDistribution) != 10 {
		t.Fatalf("quality distribution: %+v", p.QualityDistribution)
	}
	if p.QualityDistribution[8].Score != 9 || p.QualityDistribution[8].Count != 1 || p.QualityDistribution[8].Percentage != 50 {
		t.Errorf("score 9 bucket = %+v", p.QualityDistribution[8])
	}

	// Two completions: the first is both on time and early, the second is
	// late. 50% on time, 50% early, 50% late; efficiency counts on-time-or-
	// early completions once.
	te := p.TimeEfficiency
	if te.OnTimePct != 50 || te.EarlyPct != 50 || te.LatePct != 50 {
		t.Errorf("time efficiency = %+v", te)
	}
	if te.EfficiencyScore != 50 {
		t.Errorf("efficiency score = %v, want 50", te.EfficiencyScore)
	}
}

func TestReadingReport(t *testing.T) {
	sessions := []models.ReadingSession{
		{Date: "2026-03-02", DurationMin: 30, PagesRead: 20}, // Monday
		{Date: "2026-03-02", DurationMin: 30, PagesRead: 10},
		{Date: "2026-03-04", DurationMin: 60, PagesRead: 30}, // Wednesday
	}
	books := []models.Book{
		{ID: "b1", Category: models.CategoryFiction, Status: models.BookReading, TotalPages: 300},
		{ID: "b2", Category: models.CategoryFiction, Status: models.BookCompleted, TotalPages: 200, CompletedDate: "2026-03-03"},
		{ID: "b3", Category: models.CategoryTechnical, Status: models.BookCompleted, TotalPages: 400, CompletedDate: "2025-12-01"},
	}

	r := readingReport(sessions, books, "2026-03-02", "2026-03-08", 7)

	if r.TotalMinutes != 120 || r.TotalPages != 60 || r.Sessions != 3 || r.ActiveDays != 2 {
		t.Errorf("totals: %+v", r)
	}
	if r.AvgSessionMin != 40 || r.AvgPagesPerSession != 20 {
		t.Errorf("session averages: %+v", r)
	}
	// Two reading days across a seven day range.
	if r.Consistency != 28.6 {
		t.Errorf("consistency = %v, want 28.6", r.Consistency)
	}
	if r.BooksInProgress != 1 {
		t.Errorf("books in progress = %d, want 1", r.BooksInProgress)
	}
	// Only the book finished inside the range counts.
	if r.BooksCompleted != 1 {
		t.Errorf("books completed = %d, want 1", r.BooksCompleted)
	}

	if len(r.DailyPattern) != 2 {
		t.Fatalf("daily pattern: %+v", r.DailyPattern)
	}
	mon := r.DailyPattern[0]
	if mon.Weekday != time.Monday || mon.Sessions != 2 || mon.TotalMinutes != 60 || mon.AvgPages != 15 {
		t.Errorf("Monday pattern = %+v", mon)
	}

	if len(r.CategoryBreakdown) != 2 {
		t.Fatalf("category breakdown: %+v", r.CategoryBreakdown)
	}
	for _, entry := range r.CategoryBreakdown {
		switch entry.Category {
		case models.CategoryFiction:
			if entry.Books != 2 || entry.TotalPages != 500 || entry.CompletedBooks != 1 {
				t.Errorf("fiction = %+v", entry)
			}
		case models.CategoryTechnical:
			if entry.Books != 1 || entry.CompletedBooks != 1 {
				t.Errorf("technical = %+v", entry)
			}
		default:
			t.Errorf("unexpected category %q", entry.Category)
		}
	}
}
