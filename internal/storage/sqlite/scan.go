package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// Scan helpers shared by the per-entity files. Timestamps are stored as
// RFC3339 strings, optional integers as NULLable columns.

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

func parseTimestamp(v, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return t, nil
}

func parseTimePtr(v sql.NullString, field string) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := parseTimestamp(v.String, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
