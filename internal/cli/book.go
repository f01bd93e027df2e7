package cli

import (
	"fmt"

	"github.com/mholloway/cadence/internal/models"
)

type BookCmd struct {
	Add      BookAddCmd      `cmd:"" help:"Add a book to the shelf."`
	List     BookListCmd     `cmd:"" help:"List books."`
	Show     BookShowCmd     `cmd:"" help:"Show a book's details and session history."`
	Progress BookProgressCmd `cmd:"" help:"Update a book's current page."`
	Edit     BookEditCmd     `cmd:"" help:"Edit a book."`
	Finish   BookFinishCmd   `cmd:"" help:"Rate and review a finished book."`
	Pace     BookPaceCmd     `cmd:"" help:"Show reading pace and projected finish date."`
	Streak   BookStreakCmd   `cmd:"" help:"Show the book's consecutive-day reading streak."`
}

type BookAddCmd struct {
	Title    string `arg:"" help:"Book title."`
	Author   string `short:"a" help:"Author."`
	Pages    int    `short:"p" help:"Total pages."`
	Category string `help:"Category (business|technical|personal_development|leadership|strategy|biography|fiction|other)."`
	Priority int    `help:"Shelf priority, 1-5 (5 = read next)." default:"3"`
	Format   string `help:"Format (physical|ebook|audiobook)."`
	ISBN     string `help:"ISBN."`
}

func (c *BookAddCmd) Run(ctx *Context) error {
	book, err := ctx.Reading.AddBook(models.Book{
		Title:      c.Title,
		Author:     c.Author,
		TotalPages: c.Pages,
		Category:   models.BookCategory(c.Category),
		Priority:   c.Priority,
		Format:     c.Format,
		ISBN:       c.ISBN,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added book: %s (ID: %s)\n", book.Title, book.ID)
	return nil
}

type BookListCmd struct {
	Status  string `short:"s" help:"Filter by status (want_to_read|reading|paused|completed|abandoned)."`
	ShowIDs bool   `help:"Show book IDs." name:"show-ids"`
}

func (c *BookListCmd) Run(ctx *Context) error {
	books, err := ctx.Store.GetAllBooks(c.Status)
	if err != nil {
		return fmt.Errorf("failed to get books: %w", err)
	}
	if len(books) == 0 {
		fmt.Println("No books found")
		return nil
	}

	fmt.Println("Books:")
	for _, book := range books {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", book.ID)
		}
		line := fmt.Sprintf("  [%s] %s", book.Status, book.Title)
		if book.Author != "" {
			line += " — " + book.Author
		}
		line += idStr
		fmt.Println(line)
		if book.Status == models.BookReading && book.TotalPages > 0 {
			fmt.Printf("      Page %d/%d (%.1f%%)\n", book.CurrentPage, book.TotalPages, book.ProgressPercent())
		}
		if book.Rating != nil {
			fmt.Printf("      Rated %d/10\n", *book.Rating)
		}
	}

	return nil
}

type BookShowCmd struct {
	ID string `arg:"" help:"Book ID."`
}

func (c *BookShowCmd) Run(ctx *Context) error {
	book, err := ctx.Store.GetBook(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find book: %w", err)
	}

	fmt.Printf("%s\n", book.Title)
	if book.Author != "" {
		fmt.Printf("  Author: %s\n", book.Author)
	}
	fmt.Printf("  Status: %s\n", book.Status)
	if book.TotalPages > 0 {
		fmt.Printf("  Progress: page %d/%d (%.1f%%)\n", book.CurrentPage, book.TotalPages, book.ProgressPercent())
	} else if book.CurrentPage > 0 {
		fmt.Printf("  Progress: page %d\n", book.CurrentPage)
	}
	if book.Category != "" {
		fmt.Printf("  Category: %s\n", book.Category)
	}
	if book.Priority != 0 {
		fmt.Printf("  Priority: %d/5\n", book.Priority)
	}
	if book.Format != "" {
		fmt.Printf("  Format: %s\n", book.Format)
	}
	if book.ISBN != "" {
		fmt.Printf("  ISBN: %s\n", book.ISBN)
	}
	if book.Rating != nil {
		fmt.Printf("  Rating: %d/10\n", *book.Rating)
	}
	if book.Review != "" {
		fmt.Printf("  Review: %s\n", book.Review)
	}

	sessions, err := ctx.Store.GetSessionsForBook(book.ID)
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	totalMinutes := 0
	totalPages := 0
	for _, sess := range sessions {
		totalMinutes += sess.DurationMin
		totalPages += sess.PagesRead
	}
	fmt.Printf("  Sessions: %d (%d min, %d pages)\n", len(sessions), totalMinutes, totalPages)
	for _, sess := range sessions {
		fmt.Printf("    %s  %d min, %d pages\n", sess.Date, sess.DurationMin, sess.PagesRead)
	}

	return nil
}

type BookProgressCmd struct {
	ID   string `arg:"" help:"Book ID."`
	Page int    `arg:"" help:"Current page."`
}

func (c *BookProgressCmd) Run(ctx *Context) error {
	book, err := ctx.Store.GetBook(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find book: %w", err)
	}

	if c.Page < book.CurrentPage {
		fmt.Printf("Already at page %d; progress never moves backward.\n", book.CurrentPage)
		return nil
	}

	updated, err := ctx.Reading.UpdateProgress(c.ID, c.Page)
	if err != nil {
		return err
	}

	if updated.TotalPages > 0 {
		fmt.Printf("%s: page %d/%d (%.1f%%)\n", updated.Title, updated.CurrentPage, updated.TotalPages, updated.ProgressPercent())
	} else {
		fmt.Printf("%s: page %d\n", updated.Title, updated.CurrentPage)
	}
	if updated.Status == models.BookCompleted && book.Status != models.BookCompleted {
		fmt.Println("✓ Book completed! Rate it with 'cadence book finish'.")
	}
	return nil
}

type BookEditCmd struct {
	ID       string  `arg:"" help:"Book ID."`
	Title    *string `help:"New title."`
	Author   *string `short:"a" help:"New author."`
	Pages    *int    `short:"p" help:"New total page count."`
	Status   *string `short:"s" help:"New status (want_to_read|reading|paused|completed|abandoned)."`
	Category *string `help:"New category."`
	Priority *int    `help:"New shelf priority, 1-5."`
	Page     *int    `help:"Current page."`
}

func (c *BookEditCmd) Run(ctx *Context) error {
	book, err := ctx.Store.GetBook(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find book: %w", err)
	}

	if c.Title != nil {
		book.Title = *c.Title
	}
	if c.Author != nil {
		book.Author = *c.Author
	}
	if c.Pages != nil {
		book.TotalPages = *c.Pages
	}
	if c.Status != nil {
		book.Status = models.BookStatus(*c.Status)
	}
	if c.Category != nil {
		book.Category = models.BookCategory(*c.Category)
	}
	if c.Priority != nil {
		book.Priority = *c.Priority
	}
	if c.Page != nil {
		book.CurrentPage = *c.Page
	}

	updated, err := ctx.Reading.UpdateBook(book)
	if err != nil {
		return err
	}

	fmt.Printf("Updated book: %s\n", updated.Title)
	return nil
}

type BookFinishCmd struct {
	ID     string `arg:"" help:"Book ID."`
	Rating int    `arg:"" help:"Rating (1-10)."`
	Review string `short:"r" help:"Short review."`
}

func (c *BookFinishCmd) Run(ctx *Context) error {
	book, err := ctx.Store.GetBook(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find book: %w", err)
	}

	book.Status = models.BookCompleted
	book.Rating = &c.Rating
	if c.Review != "" {
		book.Review = c.Review
	}

	updated, err := ctx.Reading.UpdateBook(book)
	if err != nil {
		return err
	}

	fmt.Printf("Finished: %s (rated %d/10)\n", updated.Title, c.Rating)
	return nil
}

type BookPaceCmd struct {
	ID   string `arg:"" help:"Book ID."`
	Date string `help:"Reference date in YYYY-MM-DD format (default: today)."`
}

func (c *BookPaceCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	pace, err := ctx.Reading.BookPace(c.ID, date)
	if err != nil {
		return err
	}

	if pace.PagesPerDay == 0 {
		fmt.Println("No page progress logged yet.")
		return nil
	}

	fmt.Printf("Pace: %.1f pages/day (%.1f pages/hour)\n", pace.PagesPerDay, pace.PagesPerHour)
	if pace.FinishDate != "" {
		fmt.Printf("Projected finish: %s (%d days left)\n", pace.FinishDate, pace.DaysLeft)
	}
	return nil
}

type BookStreakCmd struct {
	ID   string `arg:"" help:"Book ID."`
	Date string `help:"Reference date in YYYY-MM-DD format (default: today)."`
}

func (c *BookStreakCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	streak, err := ctx.Reading.BookStreak(c.ID, date)
	if err != nil {
		return err
	}

	book, err := ctx.Store.GetBook(c.ID)
	if err != nil {
		return err
	}
	switch streak {
	case 0:
		fmt.Printf("%s: no active reading streak.\n", book.Title)
	case 1:
		fmt.Printf("%s: 1 day streak\n", book.Title)
	default:
		fmt.Printf("%s: %d day streak\n", book.Title, streak)
	}
	return nil
}
