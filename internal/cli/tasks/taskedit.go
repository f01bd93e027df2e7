package tasks

import (
	"fmt"

	"github.com/mholloway/cadence/internal/cli"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/utils"
)

type TaskEditCmd struct {
	ID          string  `arg:"" help:"Task ID."`
	Name        *string `help:"New task name."`
	Category    *string `short:"c" help:"New category ID."`
	Days        *string `short:"w" help:"New comma-separated weekdays or 'daily'."`
	Start       *string `short:"s" help:"New scheduled start time (HH:MM)."`
	End         *string `short:"e" help:"New scheduled end time (HH:MM)."`
	Duration    *int    `short:"d" help:"New duration in minutes."`
	Priority    *string `short:"p" help:"New priority (low|medium|high|critical)."`
	Flexible    *bool   `help:"Allow the task to drift from its scheduled window."`
	Quality     *int    `short:"q" help:"New target quality score (1-10)."`
	Description *string `help:"New description."`
	SortOrder   *int    `help:"New position within the category listing."`
	Active      *bool   `help:"Set active status."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Catalog.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	if c.Name != nil {
		task.Name = *c.Name
	}
	if c.Category != nil {
		task.CategoryID = *c.Category
	}
	if c.Days != nil {
		days, err := cli.ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		task.Days = days
	}
	if c.Start != nil {
		if *c.Start != "" {
			if _, err := utils.ParseTime(*c.Start); err != nil {
				return fmt.Errorf("invalid start time: %w", err)
			}
		}
		task.ScheduledStart = *c.Start
	}
	if c.End != nil {
		if *c.End != "" {
			if _, err := utils.ParseTime(*c.End); err != nil {
				return fmt.Errorf("invalid end time: %w", err)
			}
		}
		task.ScheduledEnd = *c.End
	}
	if c.Duration != nil {
		if *c.Duration < 0 {
			return fmt.Errorf("duration must not be negative")
		}
		task.DurationMin = *c.Duration
	}
	if c.Priority != nil {
		task.Priority = models.TaskPriority(*c.Priority)
	}
	if c.Flexible != nil {
		task.Flexible = *c.Flexible
	}
	if c.Quality != nil {
		if *c.Quality != 0 && (*c.Quality < 1 || *c.Quality > 10) {
			return fmt.Errorf("quality target must be between 1 and 10")
		}
		task.TargetQuality = *c.Quality
	}
	if c.Description != nil {
		task.Description = *c.Description
	}
	if c.SortOrder != nil {
		task.SortOrder = *c.SortOrder
	}
	if c.Active != nil {
		task.Active = *c.Active
	}

	if _, err := ctx.Catalog.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Updated task: %s\n", task.Name)
	return nil
}
