package system

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mholloway/cadence/internal/cli"
)

type DebugCmd struct {
	DBPath   *DebugDBPathCmd   `cmd:"" help:"Show database path."`
	DumpTask *DebugDumpTaskCmd `cmd:"" help:"Dump task data as JSON."`
	DumpDay  *DebugDumpDayCmd  `cmd:"" help:"Dump a day's completions and log as JSON."`
	DumpBook *DebugDumpBookCmd `cmd:"" help:"Dump book data with its sessions as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpTaskCmd struct {
	ID string `arg:"" help:"Task ID to dump."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	task, err := ctx.Store.GetTask(cmd.ID)
	if err != nil {
		return err
	}
	return printJSON(task)
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Date to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	date := cmd.Date
	if date == "today" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", cmd.Date)
	}

	completions, err := ctx.Store.GetCompletionsForDate(date)
	if err != nil {
		return err
	}
	log, err := ctx.Store.GetDailyLog(date)
	if err != nil {
		// The log may simply not exist yet; dump what we have.
		return printJSON(map[string]any{"date": date, "completions": completions})
	}
	return printJSON(map[string]any{"date": date, "completions": completions, "log": log})
}

type DebugDumpBookCmd struct {
	ID string `arg:"" help:"Book ID to dump."`
}

func (cmd *DebugDumpBookCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	book, err := ctx.Store.GetBook(cmd.ID)
	if err != nil {
		return err
	}
	sessions, err := ctx.Store.GetSessionsForBook(cmd.ID)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{"book": book, "sessions": sessions})
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
