// Package reading tracks books and reading sessions: page progress,
// automatic status transitions, and the daily reading streak.
package reading

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/storage"
	"github.com/mholloway/cadence/internal/utils"
	"github.com/mholloway/cadence/internal/validation"
)

type Service struct {
	store storage.Provider

	// Now is swappable for tests.
	Now func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{
		store: store,
		Now:   time.Now,
	}
}

// AddBook validates and stores a new book. Status defaults to want_to_read.
func (s *Service) AddBook(book models.Book) (models.Book, error) {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if book.Status == "" {
		book.Status = models.BookWantToRead
	}
	if book.Category == "" {
		book.Category = models.CategoryOther
	}
	if book.Priority == 0 {
		book.Priority = 3
	}
	if err := validation.Book(book); err != nil {
		return models.Book{}, err
	}

	now := s.Now()
	book.CreatedAt = now
	book.UpdatedAt = now
	if err := s.store.SaveBook(book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// UpdateBook validates and stores changes to an existing book, applying the
// same auto-completion rule as session logging.
func (s *Service) UpdateBook(book models.Book) (models.Book, error) {
	existing, err := s.store.GetBook(book.ID)
	if err != nil {
		return models.Book{}, err
	}
	book.CreatedAt = existing.CreatedAt

	if err := validation.Book(book); err != nil {
		return models.Book{}, err
	}

	s.applyProgress(&book, book.CurrentPage)
	book.UpdatedAt = s.Now()
	if err := s.store.SaveBook(book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// SessionInput describes one sitting. Derived fields (duration, pages read)
// may be given explicitly or computed from the time and page bounds.
type SessionInput struct {
	BookID        string `json:"book_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time,omitempty"` // HH:MM
	EndTime       string `json:"end_time,omitempty"`   // HH:MM
	DurationMin   int    `json:"duration_min,omitempty"`
	StartPage     *int   `json:"start_page,omitempty"` // defaults to the book's current page
	EndPage       int    `json:"end_page"`
	Focus         *int   `json:"focus,omitempty"`
	Comprehension *int   `json:"comprehension,omitempty"`
	Enjoyment     *int   `json:"enjoyment,omitempty"`
	SessionType   string `json:"session_type,omitempty"`
	Location      string `json:"location,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// LogSession records a sitting, rolls the book's page progress forward, and
// flips the book's status when it starts or finishes. A second session for
// the same book and date is a conflict.
func (s *Service) LogSession(input SessionInput) (models.ReadingSession, models.Book, error) {
	book, err := s.store.GetBook(input.BookID)
	if err != nil {
		return models.ReadingSession{}, models.Book{}, err
	}

	if _, err := s.store.GetSessionByBookDate(input.BookID, input.Date); err == nil {
		return models.ReadingSession{}, models.Book{}, errors.Conflict("reading session",
			fmt.Sprintf("a session for this book already exists on %s", input.Date))
	} else if !errors.IsNotFound(err) {
		return models.ReadingSession{}, models.Book{}, err
	}

	startPage := book.CurrentPage
	if input.StartPage != nil {
		startPage = *input.StartPage
	}

	session := models.ReadingSession{
		ID:            uuid.New().String(),
		BookID:        input.BookID,
		Date:          input.Date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		DurationMin:   input.DurationMin,
		StartPage:     startPage,
		EndPage:       input.EndPage,
		Focus:         input.Focus,
		Comprehension: input.Comprehension,
		Enjoyment:     input.Enjoyment,
		SessionType:   input.SessionType,
		Location:      input.Location,
		Notes:         input.Notes,
		CreatedAt:     s.Now(),
	}

	if session.DurationMin <= 0 && session.StartTime != "" && session.EndTime != "" {
		minutes, err := utils.MinutesBetween(session.StartTime, session.EndTime)
		if err != nil {
			return models.ReadingSession{}, models.Book{}, errors.Validation("end_time", err.Error())
		}
		session.DurationMin = minutes
	}
	if session.EndPage > session.StartPage {
		session.PagesRead = session.EndPage - session.StartPage
	}

	if err := validation.Session(session); err != nil {
		return models.ReadingSession{}, models.Book{}, err
	}
	if err := s.store.SaveSession(session); err != nil {
		return models.ReadingSession{}, models.Book{}, err
	}

	if book.Status == models.BookWantToRead {
		book.Status = models.BookReading
		if book.StartedDate == "" {
			book.StartedDate = input.Date
		}
	}
	s.applyProgress(&book, session.EndPage)
	if book.Status == models.BookCompleted && book.CompletedDate == "" {
		book.CompletedDate = input.Date
	}
	book.UpdatedAt = s.Now()
	if err := s.store.SaveBook(book); err != nil {
		return models.ReadingSession{}, models.Book{}, err
	}

	return session, book, nil
}

// QuickLog records a sitting from just minutes and a page count, without
// clock times.
func (s *Service) QuickLog(bookID, date string, minutes, pages int) (models.ReadingSession, models.Book, error) {
	if minutes <= 0 {
		return models.ReadingSession{}, models.Book{}, errors.Validation("minutes", "must be positive")
	}
	if pages < 0 {
		return models.ReadingSession{}, models.Book{}, errors.Validation("pages", "must not be negative")
	}

	book, err := s.store.GetBook(bookID)
	if err != nil {
		return models.ReadingSession{}, models.Book{}, err
	}

	return s.LogSession(SessionInput{
		BookID:      bookID,
		Date:        date,
		DurationMin: minutes,
		EndPage:     book.CurrentPage + pages,
	})
}

// UpdateProgress moves a book's page counter forward. A page at or behind
// the current one leaves the counter where it is.
func (s *Service) UpdateProgress(bookID string, page int) (models.Book, error) {
	if page < 0 {
		return models.Book{}, errors.Validation("page", "must not be negative")
	}
	book, err := s.store.GetBook(bookID)
	if err != nil {
		return models.Book{}, err
	}

	if page > book.CurrentPage && book.Status == models.BookWantToRead {
		book.Status = models.BookReading
		if book.StartedDate == "" {
			book.StartedDate = utils.FormatDate(s.Now())
		}
	}
	s.applyProgress(&book, page)
	if book.Status == models.BookCompleted && book.CompletedDate == "" {
		book.CompletedDate = utils.FormatDate(s.Now())
	}
	book.UpdatedAt = s.Now()
	if err := s.store.SaveBook(book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// StartBook marks a book as currently being read and stamps the start date.
func (s *Service) StartBook(bookID string) (models.Book, error) {
	book, err := s.store.GetBook(bookID)
	if err != nil {
		return models.Book{}, err
	}
	if book.Status == models.BookCompleted {
		return models.Book{}, errors.Validation("status", "book is already completed")
	}

	book.Status = models.BookReading
	if book.StartedDate == "" {
		book.StartedDate = utils.FormatDate(s.Now())
	}
	book.UpdatedAt = s.Now()
	if err := s.store.SaveBook(book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// CompleteBook marks a book finished, snapping the page counter to the last
// page and stamping the completion date.
func (s *Service) CompleteBook(bookID string) (models.Book, error) {
	book, err := s.store.GetBook(bookID)
	if err != nil {
		return models.Book{}, err
	}

	book.Status = models.BookCompleted
	if book.TotalPages > 0 {
		book.CurrentPage = book.TotalPages
	}
	if book.CompletedDate == "" {
		book.CompletedDate = utils.FormatDate(s.Now())
	}
	book.UpdatedAt = s.Now()
	if err := s.store.SaveBook(book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// applyProgress rolls the page counter forward, never backward, clamps at
// the page count, and completes the book on the last page.
func (s *Service) applyProgress(book *models.Book, page int) {
	if page > book.CurrentPage {
		book.CurrentPage = page
	}
	if book.TotalPages > 0 && book.CurrentPage >= book.TotalPages {
		book.CurrentPage = book.TotalPages
		if book.Status == models.BookReading {
			book.Status = models.BookCompleted
		}
	}
}

// Streak counts consecutive days with at least one session, ending at asOf.
// A day with no session yet does not break a streak that ran through
// yesterday.
func (s *Service) Streak(asOf string) (int, error) {
	end, err := utils.ParseDate(asOf)
	if err != nil {
		return 0, errors.Validation("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", asOf))
	}

	start := end.AddDate(0, 0, -365)
	sessions, err := s.store.GetSessionsInRange(utils.FormatDate(start), asOf)
	if err != nil {
		return 0, err
	}

	days := make(map[string]bool, len(sessions))
	for _, sess := range sessions {
		days[sess.Date] = true
	}

	cursor := end
	if !days[utils.FormatDate(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[utils.FormatDate(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

// BookStreak counts consecutive days with a session for one book, ending at
// asOf, with the same grace day as Streak.
func (s *Service) BookStreak(bookID, asOf string) (int, error) {
	end, err := utils.ParseDate(asOf)
	if err != nil {
		return 0, errors.Validation("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", asOf))
	}
	if _, err := s.store.GetBook(bookID); err != nil {
		return 0, err
	}

	sessions, err := s.store.GetSessionsForBook(bookID)
	if err != nil {
		return 0, err
	}

	days := make(map[string]bool, len(sessions))
	for _, sess := range sessions {
		days[sess.Date] = true
	}

	cursor := end
	if !days[utils.FormatDate(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[utils.FormatDate(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

// Pace summarizes reading speed for one book and projects a finish date.
type Pace struct {
	PagesPerDay  float64 `json:"pages_per_day"`
	PagesPerHour float64 `json:"pages_per_hour"`
	DaysLeft     int     `json:"days_left"`
	FinishDate   string  `json:"finish_date,omitempty"`
}

// BookPace derives the reading pace from the book's logged sessions. Books
// with no page progress yet have no pace.
func (s *Service) BookPace(bookID string, asOf string) (Pace, error) {
	book, err := s.store.GetBook(bookID)
	if err != nil {
		return Pace{}, err
	}
	sessions, err := s.store.GetSessionsForBook(bookID)
	if err != nil {
		return Pace{}, err
	}

	totalPages, totalMinutes := 0, 0
	days := map[string]bool{}
	for _, sess := range sessions {
		totalPages += sess.PagesRead
		totalMinutes += sess.DurationMin
		days[sess.Date] = true
	}
	if totalPages == 0 || len(days) == 0 {
		return Pace{}, nil
	}

	pace := Pace{
		PagesPerDay: round1(float64(totalPages) / float64(len(days))),
	}
	if totalMinutes > 0 {
		pace.PagesPerHour = round1(float64(totalPages) / float64(totalMinutes) * 60)
	}

	remaining := book.PagesRemaining()
	if remaining > 0 && pace.PagesPerDay > 0 {
		pace.DaysLeft = int(float64(remaining)/pace.PagesPerDay + 0.999)
		if day, err := utils.ParseDate(asOf); err == nil {
			pace.FinishDate = utils.FormatDate(day.AddDate(0, 0, pace.DaysLeft))
		}
	}
	return pace, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
