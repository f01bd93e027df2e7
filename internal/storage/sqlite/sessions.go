package sqlite

import (
	"database/sql"
	"errors"
	"time"

	errs "github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
)

const sessionColumns = `id, book_id, date, start_time, end_time, duration_min,
		start_page, end_page, pages_read, focus, comprehension, enjoyment,
		session_type, location, notes, created_at`

func (s *Store) SaveSession(session models.ReadingSession) error {
	_, err := s.db.Exec(`
		INSERT INTO reading_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			book_id = excluded.book_id,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			duration_min = excluded.duration_min,
			start_page = excluded.start_page,
			end_page = excluded.end_page,
			pages_read = excluded.pages_read,
			focus = excluded.focus,
			comprehension = excluded.comprehension,
			enjoyment = excluded.enjoyment,
			session_type = excluded.session_type,
			location = excluded.location,
			notes = excluded.notes`,
		session.ID, session.BookID, session.Date, session.StartTime, session.EndTime, session.DurationMin,
		session.StartPage, session.EndPage, session.PagesRead,
		nullInt(session.Focus), nullInt(session.Comprehension), nullInt(session.Enjoyment),
		session.SessionType, session.Location, session.Notes, session.CreatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetSession(id string) (models.ReadingSession, error) {
	row := s.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM reading_sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReadingSession{}, errs.NotFound("reading session", id)
	}
	return sess, err
}

func (s *Store) GetSessionByBookDate(bookID, date string) (models.ReadingSession, error) {
	row := s.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM reading_sessions WHERE book_id = ? AND date = ?`, bookID, date)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReadingSession{}, errs.NotFound("reading session", bookID+"@"+date)
	}
	return sess, err
}

func (s *Store) GetSessionsInRange(start, end string) ([]models.ReadingSession, error) {
	return s.querySessions(`
		SELECT `+sessionColumns+`
		FROM reading_sessions WHERE date >= ? AND date <= ? ORDER BY date, start_time`, start, end)
}

func (s *Store) GetSessionsForBook(bookID string) ([]models.ReadingSession, error) {
	return s.querySessions(`
		SELECT `+sessionColumns+`
		FROM reading_sessions WHERE book_id = ? ORDER BY date, start_time`, bookID)
}

func (s *Store) querySessions(query string, args ...any) ([]models.ReadingSession, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.ReadingSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

func scanSession(row rowScanner) (models.ReadingSession, error) {
	var sess models.ReadingSession
	var createdAt string
	var focus, comprehension, enjoyment sql.NullInt64

	err := row.Scan(&sess.ID, &sess.BookID, &sess.Date, &sess.StartTime, &sess.EndTime, &sess.DurationMin,
		&sess.StartPage, &sess.EndPage, &sess.PagesRead, &focus, &comprehension, &enjoyment,
		&sess.SessionType, &sess.Location, &sess.Notes, &createdAt)
	if err != nil {
		return models.ReadingSession{}, err
	}

	sess.Focus = intPtr(focus)
	sess.Comprehension = intPtr(comprehension)
	sess.Enjoyment = intPtr(enjoyment)
	sess.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.ReadingSession{}, err
	}

	return sess, nil
}
