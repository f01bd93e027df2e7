package cli

import (
	"fmt"

	"github.com/mholloway/cadence/internal/reading"
)

type ReadCmd struct {
	Log    ReadLogCmd    `cmd:"" help:"Log a reading session."`
	Quick  ReadQuickCmd  `cmd:"" help:"Quick-log minutes and pages."`
	Streak ReadStreakCmd `cmd:"" help:"Show the current reading streak."`
}

type ReadLogCmd struct {
	BookID        string `arg:"" help:"Book ID."`
	EndPage       int    `arg:"" help:"Page reached."`
	Date          string `help:"Date in YYYY-MM-DD format (default: today)."`
	Start         string `short:"s" help:"Start time (HH:MM)."`
	End           string `short:"e" help:"End time (HH:MM)."`
	Duration      int    `short:"d" help:"Duration in minutes (derived from times when omitted)."`
	StartPage     *int   `help:"Starting page (defaults to the book's current page)."`
	Focus         *int   `help:"Focus score (1-10)."`
	Comprehension *int   `help:"Comprehension score (1-10)."`
	Enjoyment     *int   `help:"Enjoyment score (1-10)."`
	Type          string `help:"Session type (focused|casual|skim)."`
	Location      string `help:"Where you read."`
	Notes         string `short:"n" help:"Session notes."`
}

func (c *ReadLogCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	session, book, err := ctx.Reading.LogSession(reading.SessionInput{
		BookID:        c.BookID,
		Date:          date,
		StartTime:     c.Start,
		EndTime:       c.End,
		DurationMin:   c.Duration,
		StartPage:     c.StartPage,
		EndPage:       c.EndPage,
		Focus:         c.Focus,
		Comprehension: c.Comprehension,
		Enjoyment:     c.Enjoyment,
		SessionType:   c.Type,
		Location:      c.Location,
		Notes:         c.Notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged %d pages in %dm of %s\n", session.PagesRead, session.DurationMin, book.Title)
	if book.Finished() {
		fmt.Println("Book finished! 🎉")
	} else if book.TotalPages > 0 {
		fmt.Printf("Progress: page %d/%d (%.1f%%)\n", book.CurrentPage, book.TotalPages, book.ProgressPercent())
	}
	return nil
}

type ReadQuickCmd struct {
	BookID  string `arg:"" help:"Book ID."`
	Minutes int    `arg:"" help:"Minutes read."`
	Pages   int    `arg:"" help:"Pages read."`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *ReadQuickCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	session, book, err := ctx.Reading.QuickLog(c.BookID, date, c.Minutes, c.Pages)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %d pages in %dm of %s\n", session.PagesRead, session.DurationMin, book.Title)
	return nil
}

type ReadStreakCmd struct {
	Date string `help:"Count back from this date (default: today)."`
}

func (c *ReadStreakCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	streak, err := ctx.Reading.Streak(date)
	if err != nil {
		return err
	}

	switch streak {
	case 0:
		fmt.Println("No reading streak. Pick up a book today!")
	case 1:
		fmt.Println("Reading streak: 1 day")
	default:
		fmt.Printf("Reading streak: %d days\n", streak)
	}
	return nil
}
