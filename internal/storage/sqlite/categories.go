package sqlite

import (
	"database/sql"
	"errors"
	"time"

	errs "github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
)

func (s *Store) SaveCategory(category models.RoutineCategory) error {
	_, err := s.db.Exec(`
		INSERT INTO routine_categories (id, name, description, color, icon, sort_order, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			color = excluded.color,
			icon = excluded.icon,
			sort_order = excluded.sort_order,
			active = excluded.active`,
		category.ID, category.Name, category.Description, category.Color, category.Icon,
		category.SortOrder, category.Active, category.CreatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetCategory(id string) (models.RoutineCategory, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, color, icon, sort_order, active, created_at
		FROM routine_categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoutineCategory{}, errs.NotFound("category", id)
	}
	return c, err
}

func (s *Store) GetAllCategories(includeInactive bool) ([]models.RoutineCategory, error) {
	query := `
		SELECT id, name, description, color, icon, sort_order, active, created_at
		FROM routine_categories`
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY sort_order, name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.RoutineCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (models.RoutineCategory, error) {
	var c models.RoutineCategory
	var createdAt string

	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.SortOrder, &c.Active, &createdAt)
	if err != nil {
		return models.RoutineCategory{}, err
	}

	c.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.RoutineCategory{}, err
	}

	return c, nil
}
