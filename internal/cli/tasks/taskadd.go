package tasks

import (
	"fmt"

	"github.com/mholloway/cadence/internal/cli"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/utils"
)

type TaskAddCmd struct {
	Name        string `arg:"" help:"Task name."`
	Category    string `short:"c" help:"Category ID the task belongs to." required:""`
	Days        string `short:"w" help:"Comma-separated weekdays (mon,wed,fri) or 'daily'." default:"daily"`
	Start       string `short:"s" help:"Scheduled start time (HH:MM)."`
	End         string `short:"e" help:"Scheduled end time (HH:MM)."`
	Duration    int    `short:"d" help:"Expected duration in minutes."`
	Priority    string `short:"p" help:"Priority (low|medium|high|critical)." default:"medium"`
	Flexible    bool   `help:"Allow the task to drift from its scheduled window."`
	Quality     int    `short:"q" help:"Target quality score (1-10)."`
	Description string `help:"Task description."`
	SortOrder   int    `help:"Position within the category listing."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if c.Quality != 0 && (c.Quality < 1 || c.Quality > 10) {
		return fmt.Errorf("quality target must be between 1 and 10")
	}
	if c.Start != "" {
		if _, err := utils.ParseTime(c.Start); err != nil {
			return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
		}
	}
	if c.End != "" {
		if _, err := utils.ParseTime(c.End); err != nil {
			return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
		}
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	task, err := ctx.Catalog.CreateTask(models.RoutineTask{
		CategoryID:     c.Category,
		Name:           c.Name,
		Description:    c.Description,
		ScheduledStart: c.Start,
		ScheduledEnd:   c.End,
		DurationMin:    c.Duration,
		Days:           days,
		Priority:       models.TaskPriority(c.Priority),
		Flexible:       c.Flexible,
		TargetQuality:  c.Quality,
		SortOrder:      c.SortOrder,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Name, task.ID)
	fmt.Printf("  Scheduled: %s\n", task.Days)
	return nil
}
