package models

import (
	"math"
	"time"
)

type BookStatus string

const (
	BookWantToRead BookStatus = "want_to_read"
	BookReading    BookStatus = "reading"
	BookCompleted  BookStatus = "completed"
	BookPaused     BookStatus = "paused"
	BookAbandoned  BookStatus = "abandoned"
)

// BookCategory classifies what kind of book it is.
type BookCategory string

const (
	CategoryBusiness            BookCategory = "business"
	CategoryTechnical           BookCategory = "technical"
	CategoryPersonalDevelopment BookCategory = "personal_development"
	CategoryLeadership          BookCategory = "leadership"
	CategoryStrategy            BookCategory = "strategy"
	CategoryBiography           BookCategory = "biography"
	CategoryFiction             BookCategory = "fiction"
	CategoryOther               BookCategory = "other"
)

// ValidBookCategory reports whether c names a known category.
func ValidBookCategory(c BookCategory) bool {
	switch c {
	case CategoryBusiness, CategoryTechnical, CategoryPersonalDevelopment,
		CategoryLeadership, CategoryStrategy, CategoryBiography,
		CategoryFiction, CategoryOther:
		return true
	}
	return false
}

type Book struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Author        string       `json:"author,omitempty"`
	ISBN          string       `json:"isbn,omitempty"`
	Category      BookCategory `json:"category"`
	Format        string       `json:"format,omitempty"` // physical, ebook, audiobook
	Status        BookStatus   `json:"status"`
	Priority      int          `json:"priority"` // 1-5, 5 = read next
	TotalPages    int          `json:"total_pages"`
	CurrentPage   int          `json:"current_page"`
	Rating        *int         `json:"rating,omitempty"` // 1-10
	Review        string       `json:"review,omitempty"`
	StartedDate   string       `json:"started_date,omitempty"`   // YYYY-MM-DD
	CompletedDate string       `json:"completed_date,omitempty"` // YYYY-MM-DD
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ProgressPercent returns reading progress rounded to one decimal place.
func (b Book) ProgressPercent() float64 {
	if b.TotalPages <= 0 {
		return 0
	}
	pct := float64(b.CurrentPage) / float64(b.TotalPages) * 100
	return math.Round(pct*10) / 10
}

// PagesRemaining never goes negative.
func (b Book) PagesRemaining() int {
	if b.CurrentPage >= b.TotalPages {
		return 0
	}
	return b.TotalPages - b.CurrentPage
}

// Finished reports whether the last page has been reached.
func (b Book) Finished() bool {
	return b.TotalPages > 0 && b.CurrentPage >= b.TotalPages
}

// ReadingSession is one sitting with a book. The service layer enforces one
// session per (book, date).
type ReadingSession struct {
	ID            string    `json:"id"`
	BookID        string    `json:"book_id"`
	Date          string    `json:"date"`       // YYYY-MM-DD
	StartTime     string    `json:"start_time"` // HH:MM
	EndTime       string    `json:"end_time"`   // HH:MM
	DurationMin   int       `json:"duration_min"`
	StartPage     int       `json:"start_page"`
	EndPage       int       `json:"end_page"`
	PagesRead     int       `json:"pages_read"`
	Focus         *int      `json:"focus,omitempty"`         // 1-10
	Comprehension *int      `json:"comprehension,omitempty"` // 1-10
	Enjoyment     *int      `json:"enjoyment,omitempty"`     // 1-10
	SessionType   string    `json:"session_type,omitempty"`
	Location      string    `json:"location,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// QualityScore averages whichever of focus, comprehension, and enjoyment are
// present, rounded to one decimal place.
func (s ReadingSession) QualityScore() (float64, bool) {
	sum, n := 0, 0
	for _, v := range []*int{s.Focus, s.Comprehension, s.Enjoyment} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	avg := float64(sum) / float64(n)
	return math.Round(avg*10) / 10, true
}

// PagesPerHour returns the session's reading speed, 0 for zero-duration
// sessions.
func (s ReadingSession) PagesPerHour() float64 {
	if s.DurationMin <= 0 {
		return 0
	}
	speed := float64(s.PagesRead) / float64(s.DurationMin) * 60
	return math.Round(speed*10) / 10
}
