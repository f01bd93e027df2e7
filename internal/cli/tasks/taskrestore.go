package tasks

import (
	"fmt"

	"github.com/mholloway/cadence/internal/cli"
)

type TaskRestoreCmd struct {
	ID string `arg:"" help:"Task ID to restore."`
}

func (c *TaskRestoreCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Catalog.RestoreTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to restore task: %w", err)
	}

	fmt.Printf("Restored task: %s (ID: %s)\n", task.Name, c.ID)
	return nil
}
