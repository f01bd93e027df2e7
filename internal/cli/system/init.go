package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mholloway/cadence/internal/cli"
	"github.com/mholloway/cadence/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized cadence storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, source string) error {
	if storage.IsPostgres(source) && storage.HasEmbeddedCredentials(source) {
		return fmt.Errorf("source connection string contains embedded credentials; use the keyring or %s instead", "CADENCE_DB_CONNECTION")
	}
	sourceStore := storage.New(storage.ExpandPath(source))

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating categories...")
	categories, err := sourceStore.GetAllCategories(true)
	if err != nil {
		return fmt.Errorf("failed to get categories from source: %w", err)
	}
	for _, category := range categories {
		if err := ctx.Store.SaveCategory(category); err != nil {
			return fmt.Errorf("failed to save category %s: %w", category.ID, err)
		}
	}
	fmt.Printf("    Migrated %d categories\n", len(categories))

	fmt.Println("  Migrating tasks...")
	tasks, err := sourceStore.GetAllTasks(true)
	if err != nil {
		return fmt.Errorf("failed to get tasks from source: %w", err)
	}
	for _, task := range tasks {
		if err := ctx.Store.SaveTask(task); err != nil {
			return fmt.Errorf("failed to save task %s: %w", task.ID, err)
		}
	}
	fmt.Printf("    Migrated %d tasks\n", len(tasks))

	fmt.Println("  Migrating completions...")
	completions, err := sourceStore.GetCompletionsInRange("0000-01-01", "9999-12-31")
	if err != nil {
		return fmt.Errorf("failed to get completions from source: %w", err)
	}
	for _, completion := range completions {
		if err := ctx.Store.SaveCompletion(completion); err != nil {
			return fmt.Errorf("failed to save completion %s: %w", completion.ID, err)
		}
	}
	fmt.Printf("    Migrated %d completions\n", len(completions))

	fmt.Println("  Migrating daily logs...")
	logs, err := sourceStore.GetDailyLogsInRange("0000-01-01", "9999-12-31")
	if err != nil {
		return fmt.Errorf("failed to get daily logs from source: %w", err)
	}
	for _, log := range logs {
		if err := ctx.Store.SaveDailyLog(log); err != nil {
			return fmt.Errorf("failed to save daily log %s: %w", log.Date, err)
		}
	}
	fmt.Printf("    Migrated %d daily logs\n", len(logs))

	fmt.Println("  Migrating books...")
	books, err := sourceStore.GetAllBooks("")
	if err != nil {
		return fmt.Errorf("failed to get books from source: %w", err)
	}
	for _, book := range books {
		if err := ctx.Store.SaveBook(book); err != nil {
			return fmt.Errorf("failed to save book %s: %w", book.ID, err)
		}
	}
	fmt.Printf("    Migrated %d books\n", len(books))

	fmt.Println("  Migrating reading sessions...")
	sessions, err := sourceStore.GetSessionsInRange("0000-01-01", "9999-12-31")
	if err != nil {
		return fmt.Errorf("failed to get sessions from source: %w", err)
	}
	for _, session := range sessions {
		if err := ctx.Store.SaveSession(session); err != nil {
			return fmt.Errorf("failed to save session %s: %w", session.ID, err)
		}
	}
	fmt.Printf("    Migrated %d sessions\n", len(sessions))

	fmt.Println("  Migrating weekly reviews...")
	reviews, err := sourceStore.GetAllReviews()
	if err != nil {
		return fmt.Errorf("failed to get reviews from source: %w", err)
	}
	for _, review := range reviews {
		if err := ctx.Store.SaveReview(review); err != nil {
			return fmt.Errorf("failed to save review %d-W%02d: %w", review.Year, review.WeekNumber, err)
		}
	}
	fmt.Printf("    Migrated %d reviews\n", len(reviews))

	return nil
}
