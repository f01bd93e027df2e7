package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/mholloway/cadence/internal/cli"
	"github.com/mholloway/cadence/internal/migration"
	"github.com/mholloway/cadence/internal/storage/postgres"
	"github.com/mholloway/cadence/internal/storage/sqlite"
	"github.com/mholloway/cadence/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	var (
		runner *migration.Runner
		err    error
	)
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		runner, err = newRunner(store.GetDB(), "sqlite")
	case *postgres.Store:
		runner, err = newRunner(store.GetDB(), "postgres")
	default:
		return fmt.Errorf("unsupported storage backend")
	}
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}

func newRunner(db *sql.DB, dialect string) (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", dialect, err)
	}
	return migration.NewRunner(db, sub), nil
}
