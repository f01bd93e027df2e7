package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mholloway/cadence/internal/export"
	"github.com/mholloway/cadence/internal/utils"
)

type ExportCmd struct {
	Start  string `short:"s" help:"Range start in YYYY-MM-DD format." required:""`
	End    string `short:"e" help:"Range end in YYYY-MM-DD format (default: today)."`
	Format string `short:"f" help:"Output format (json|csv|xlsx)." default:"json"`
	Output string `short:"o" help:"Output path (default: generated name in the working directory)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if _, err := utils.ParseDate(c.Start); err != nil {
		return err
	}
	end, err := ResolveDate(c.End)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	path := c.Output
	if path == "" {
		path = export.Filename(format, c.Start, end)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	svc := export.New(ctx.Store)
	if err := svc.Export(f, format, c.Start, end); err != nil {
		os.Remove(path)
		return err
	}

	fmt.Printf("Exported %s – %s to %s\n", c.Start, end, path)
	return nil
}
