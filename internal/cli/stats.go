package cli

import (
	"fmt"
	"time"

	"github.com/mholloway/cadence/internal/metrics"
	"github.com/mholloway/cadence/internal/utils"
)

type StatsCmd struct {
	Start string `short:"s" help:"Range start in YYYY-MM-DD format."`
	End   string `short:"e" help:"Range end in YYYY-MM-DD format (default: today)."`
	Days  int    `short:"d" help:"Shorthand: analyze the trailing N days." default:"7"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	end, err := ResolveDate(c.End)
	if err != nil {
		return err
	}
	start := c.Start
	if start == "" {
		endDay, _ := utils.ParseDate(end)
		start = utils.FormatDate(endDay.AddDate(0, 0, -(c.Days - 1)))
	}

	report, err := ctx.Metrics.Analyze(start, end)
	if err != nil {
		return err
	}

	ov := report.Overview
	fmt.Printf("Analytics %s – %s (%d days, %d active)\n", report.Start, report.End, ov.DaysAnalyzed, ov.ActiveDays)
	fmt.Println()
	fmt.Printf("  Completion rate: %.1f%%\n", ov.AvgCompletionRate)
	fmt.Printf("  Avg quality:     %.1f/10\n", ov.AvgQuality)
	fmt.Printf("  Reading:         %d min total\n", ov.TotalReadingMin)
	fmt.Printf("  Exercise days:   %d\n", ov.ExerciseDays)
	fmt.Printf("  Excellent days:  %d (%.1f%%)\n", ov.ExcellentDays, ov.ExcellenceRate)
	fmt.Printf("  Energy stability: %.1f/100\n", report.Energy.Stability)

	if len(report.CompletionTrend.Points) > 0 {
		fmt.Println()
		direction := "steady"
		if report.CompletionTrend.Trend > 0 {
			direction = "improving"
		} else if report.CompletionTrend.Trend < 0 {
			direction = "declining"
		}
		fmt.Printf("  7-day completion trend: %s (%+.1f)\n", direction, report.CompletionTrend.Trend)
	}

	if len(report.Goals.Goals) > 0 {
		fmt.Println()
		fmt.Printf("Goals (overall %.1f%%):\n", report.Goals.OverallScore)
		for _, goal := range report.Goals.Goals {
			fmt.Printf("  %-18s %d/%d days (%.0f%%, %s)\n",
				goal.Name, goal.DaysAchieved, ov.DaysAnalyzed, goal.AchievementRate, goal.Status)
		}
	}

	if len(report.TopPerformers) > 0 {
		fmt.Println()
		fmt.Println("Top performers:")
		for _, insight := range report.TopPerformers {
			fmt.Printf("  %s — %.1f%% done, quality %.1f\n",
				insight.Name, insight.CompletionRate, insight.AvgQuality)
		}
	}

	if len(report.NeedsImprovement) > 0 {
		fmt.Println()
		fmt.Println("Needs attention:")
		for _, insight := range report.NeedsImprovement {
			fmt.Printf("  %s — %.1f%% done\n", insight.Name, insight.CompletionRate)
			for _, issue := range insight.Issues {
				fmt.Printf("      %s\n", issue)
			}
		}
	}

	fmt.Println()
	fmt.Println("Streaks:")
	printStreak := func(name string, s metrics.Streak) {
		fmt.Printf("  %-12s current %d, longest %d\n", name, s.Current, s.Longest)
	}
	printStreak("completion", report.Streaks.Completion)
	printStreak("quality", report.Streaks.Quality)
	printStreak("reading", report.Streaks.Reading)
	printStreak("exercise", report.Streaks.Exercise)

	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	day := DayCmd{Date: utils.FormatDate(time.Now())}
	return day.Run(ctx)
}
