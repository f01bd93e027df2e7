package cli

import (
	"fmt"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	view, err := ctx.Ledger.EnsureForDate(date)
	if err != nil {
		return err
	}

	fmt.Printf("Routine for %s:\n", view.Date)
	if len(view.Entries) == 0 {
		fmt.Println("  Nothing scheduled.")
	}
	for _, entry := range view.Entries {
		fmt.Println(FormatEntry(entry))
	}

	summary, err := ctx.Metrics.Summarize(date)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Completed %d/%d (%.1f%%)", summary.CompletedTasks, summary.TotalTasks, summary.CompletionRate)
	if summary.AvgQuality > 0 {
		fmt.Printf(", avg quality %.1f", summary.AvgQuality)
	}
	if summary.ReadingMinutes > 0 {
		fmt.Printf(", %d min read", summary.ReadingMinutes)
	}
	fmt.Println()
	fmt.Printf("Excellence: %.1f%% (%d/6 targets)\n", summary.Excellence.Score, summary.Excellence.MetCount())

	return nil
}
