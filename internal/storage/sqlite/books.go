package sqlite

import (
	"database/sql"
	"errors"
	"time"

	errs "github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
)

const bookColumns = `id, title, author, isbn, category, format, status, priority, total_pages,
		current_page, rating, review, started_date, completed_date, created_at, updated_at`

func (s *Store) SaveBook(book models.Book) error {
	_, err := s.db.Exec(`
		INSERT INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			isbn = excluded.isbn,
			category = excluded.category,
			format = excluded.format,
			status = excluded.status,
			priority = excluded.priority,
			total_pages = excluded.total_pages,
			current_page = excluded.current_page,
			rating = excluded.rating,
			review = excluded.review,
			started_date = excluded.started_date,
			completed_date = excluded.completed_date,
			updated_at = excluded.updated_at`,
		book.ID, book.Title, book.Author, book.ISBN, string(book.Category), book.Format, string(book.Status),
		book.Priority, book.TotalPages, book.CurrentPage, nullInt(book.Rating), book.Review,
		book.StartedDate, book.CompletedDate,
		book.CreatedAt.Format(time.RFC3339), book.UpdatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetBook(id string) (models.Book, error) {
	row := s.db.QueryRow(`
		SELECT `+bookColumns+`
		FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, errs.NotFound("book", id)
	}
	return b, err
}

// GetAllBooks lists books, optionally filtered by status. An empty status
// returns everything.
func (s *Store) GetAllBooks(status string) ([]models.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books`
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

func scanBook(row rowScanner) (models.Book, error) {
	var b models.Book
	var category, status, createdAt, updatedAt string
	var rating sql.NullInt64

	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &category, &b.Format, &status,
		&b.Priority, &b.TotalPages, &b.CurrentPage, &rating, &b.Review, &b.StartedDate, &b.CompletedDate,
		&createdAt, &updatedAt)
	if err != nil {
		return models.Book{}, err
	}

	b.Category = models.BookCategory(category)
	b.Status = models.BookStatus(status)
	b.Rating = intPtr(rating)
	b.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.Book{}, err
	}
	b.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at")
	if err != nil {
		return models.Book{}, err
	}

	return b, nil
}
