package cli

import (
	"fmt"

	"github.com/mholloway/cadence/internal/ledger"
)

type StartCmd struct {
	TaskID string `arg:"" help:"Task ID to start."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *StartCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	completion, err := ctx.Ledger.Start(c.TaskID, date)
	if err != nil {
		return err
	}
	fmt.Printf("Started task for %s at %s\n", date, completion.ActualStart.Format("15:04"))
	return nil
}

type CompleteCmd struct {
	TaskID       string `arg:"" help:"Task ID to complete."`
	Quality      int    `arg:"" help:"Quality score (1-10)."`
	Date         string `help:"Date in YYYY-MM-DD format (default: today)."`
	EnergyBefore *int   `help:"Energy level before (1-10)."`
	EnergyAfter  *int   `help:"Energy level after (1-10)."`
	Difficulty   *int   `help:"Difficulty level (1-10)."`
	Duration     *int   `short:"d" help:"Actual duration in minutes."`
	Notes        string `short:"n" help:"Completion notes."`
	Obstacles    string `help:"What got in the way."`
	Improvements string `help:"What to try next time."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	completion, err := ctx.Ledger.Complete(c.TaskID, date, ledger.CompleteInput{
		QualityScore:    c.Quality,
		EnergyBefore:    c.EnergyBefore,
		EnergyAfter:     c.EnergyAfter,
		DifficultyLevel: c.Difficulty,
		DurationMin:     c.Duration,
		Notes:           c.Notes,
		Obstacles:       c.Obstacles,
		Improvements:    c.Improvements,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Completed task for %s (quality %d/10)\n", date, *completion.QualityScore)
	return nil
}

type SkipCmd struct {
	TaskID string `arg:"" help:"Task ID to skip."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
	Reason string `short:"r" help:"Why the task was skipped."`
}

func (c *SkipCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Ledger.Skip(c.TaskID, date, c.Reason); err != nil {
		return err
	}
	fmt.Printf("Skipped task for %s\n", date)
	return nil
}

type PostponeCmd struct {
	TaskID string `arg:"" help:"Task ID to postpone."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
	Reason string `short:"r" help:"Why the task was postponed."`
}

func (c *PostponeCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Ledger.Postpone(c.TaskID, date, c.Reason); err != nil {
		return err
	}
	fmt.Printf("Postponed task for %s\n", date)
	return nil
}
