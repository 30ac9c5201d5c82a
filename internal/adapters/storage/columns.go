package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"softgym/internal/domain/membership"
)

// DateValue formats a civil date for a TEXT column. The zero time maps to NULL.
func DateValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(membership.DateLayout)
}

// ParseDateColumn reads a nullable TEXT date column.
func ParseDateColumn(col sql.NullString) (time.Time, error) {
	if !col.Valid || col.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(membership.DateLayout, col.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored date %q: %w", col.String, err)
	}
	return t, nil
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err is a SQLite FOREIGN KEY constraint failure.
func IsForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
