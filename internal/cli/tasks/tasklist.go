package tasks

import (
	"fmt"

	"github.com/mholloway/cadence/internal/cli"
)

type TaskListCmd struct {
	All      bool   `help:"Include inactive tasks."`
	Category string `short:"c" help:"Only tasks in this category ID."`
	ShowIDs  bool   `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Catalog.ListCategories(true)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	tasks, err := ctx.Catalog.ListTasks(c.All)
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, task := range tasks {
		if c.Category != "" && task.CategoryID != c.Category {
			continue
		}

		status := "active"
		if !task.Active {
			status = "inactive"
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", task.ID)
		}

		categoryName := names[task.CategoryID]
		if categoryName == "" {
			categoryName = task.CategoryID
		}

		fmt.Printf("  [%s] %s%s - %s (%s)\n",
			status, task.Name, idStr, categoryName, task.Days)

		if task.ScheduledStart != "" || task.ScheduledEnd != "" {
			fmt.Printf("      Window: %s - %s\n", task.ScheduledStart, task.ScheduledEnd)
		}
		if task.DurationMin > 0 {
			fmt.Printf("      Duration: %dm\n", task.DurationMin)
		}
	}

	return nil
}
