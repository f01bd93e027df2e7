package cli

import (
	"fmt"

	"github.com/mholloway/cadence/internal/models"
)

type ReviewCmd struct {
	Generate ReviewGenerateCmd `cmd:"" help:"Generate (or regenerate) a weekly review."`
	Show     ReviewShowCmd     `cmd:"" help:"Show a weekly review."`
	List     ReviewListCmd     `cmd:"" help:"List all weekly reviews."`
	Notes    ReviewNotesCmd    `cmd:"" help:"Attach notes to a weekly review."`
}

type ReviewGenerateCmd struct {
	Year int    `help:"ISO year (with --week)."`
	Week int    `help:"ISO week number (with --year)."`
	Date string `help:"Generate for the week containing this date (default: today)."`
}

func (c *ReviewGenerateCmd) Run(ctx *Context) error {
	var (
		result models.WeeklyReview
		err    error
	)
	if c.Year != 0 || c.Week != 0 {
		result, err = ctx.Review.Generate(c.Year, c.Week)
	} else {
		date, derr := ResolveDate(c.Date)
		if derr != nil {
			return derr
		}
		result, err = ctx.Review.GenerateForDate(date)
	}
	if err != nil {
		return err
	}

	printReview(result)
	printDelta(ctx, result)
	return nil
}

type ReviewShowCmd struct {
	Year int `arg:"" help:"ISO year."`
	Week int `arg:"" help:"ISO week number."`
}

func (c *ReviewShowCmd) Run(ctx *Context) error {
	result, err := ctx.Review.Get(c.Year, c.Week)
	if err != nil {
		return err
	}
	printReview(result)
	printDelta(ctx, result)
	return nil
}

type ReviewListCmd struct{}

func (c *ReviewListCmd) Run(ctx *Context) error {
	reviews, err := ctx.Review.List()
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews yet. Run 'cadence review generate' after a week of tracking.")
		return nil
	}

	fmt.Println("Weekly reviews:")
	for _, review := range reviews {
		fmt.Printf("  %d-W%02d  %s – %s  %5.1f (%s)\n",
			review.Year, review.WeekNumber, review.WeekStart, review.WeekEnd,
			review.OverallScore, review.Grade)
	}
	return nil
}

type ReviewNotesCmd struct {
	Year  int    `arg:"" help:"ISO year."`
	Week  int    `arg:"" help:"ISO week number."`
	Notes string `arg:"" help:"Notes text."`
}

func (c *ReviewNotesCmd) Run(ctx *Context) error {
	if _, err := ctx.Review.SetNotes(c.Year, c.Week, c.Notes); err != nil {
		return err
	}
	fmt.Printf("Saved notes for %d-W%02d\n", c.Year, c.Week)
	return nil
}

func printReview(r models.WeeklyReview) {
	fmt.Printf("Week %d-W%02d (%s – %s)\n", r.Year, r.WeekNumber, r.WeekStart, r.WeekEnd)
	fmt.Printf("Overall: %.1f — grade %s\n", r.OverallScore, r.Grade)
	fmt.Println()
	fmt.Printf("  Completion rate: %.1f%%\n", r.AvgCompletionRate)
	fmt.Printf("  Avg quality:     %.1f/10\n", r.AvgQualityScore)
	fmt.Printf("  Reading:         %d min over %d days\n", r.TotalReadingMinutes, r.ReadingDays)
	fmt.Printf("  Exercise:        %d days\n", r.ExerciseDays)
	fmt.Printf("  Good sleep:      %d days\n", r.GoodSleepDays)

	if len(r.Highlights) > 0 {
		fmt.Println()
		fmt.Println("Highlights:")
		for _, h := range r.Highlights {
			fmt.Printf("  • %s\n", h)
		}
	}
	if len(r.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, s := range r.Suggestions {
			fmt.Printf("  • %s\n", s)
		}
	}
	if r.Notes != "" {
		fmt.Println()
		fmt.Printf("Notes: %s\n", r.Notes)
	}
}

func printDelta(ctx *Context, r models.WeeklyReview) {
	scoreDelta, completionDelta, ok := ctx.Review.PreviousWeekDelta(r)
	if !ok {
		return
	}
	fmt.Println()
	fmt.Printf("vs last week: score %+.1f, completion %+.1f%%\n", scoreDelta, completionDelta)
}
