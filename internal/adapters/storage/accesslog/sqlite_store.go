package accesslog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"softgym/internal/adapters/storage"
	domain "softgym/internal/domain/accesslog"
	"softgym/internal/domain/membership"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new access log Store.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Append writes one entry and assigns its ID.
// PRE: entry has been validated
// POST: entry.ID is set
func (s *SQLiteStore) Append(ctx context.Context, entry *domain.Entry) error {
	var clientID any
	if entry.HasClient() {
		clientID = entry.ClientID
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO access_log (client_id, gym_id, client_name, status, reason, access_date, access_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		clientID,
		entry.GymID,
		entry.ClientName,
		string(entry.Status),
		entry.Reason,
		storage.DateValue(entry.Date),
		entry.Time,
	)
	if err != nil {
		return fmt.Errorf("insert access log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// ListByDate returns the entries of one gym for a civil date, newest first.
// PRE: gymID > 0
func (s *SQLiteStore) ListByDate(ctx context.Context, gymID int64, date time.Time) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, client_id, gym_id, client_name, status, reason, access_date, access_time
		FROM access_log WHERE gym_id = ? AND access_date = ?
		ORDER BY access_time DESC, id DESC`,
		gymID, membership.Date(date).Format(membership.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var clientID sql.NullInt64
		var status string
		var day sql.NullString
		if err := rows.Scan(&e.ID, &clientID, &e.GymID, &e.ClientName, &status, &e.Reason, &day, &e.Time); err != nil {
			return nil, err
		}
		if clientID.Valid {
			e.ClientID = clientID.Int64
		}
		e.Status = domain.Status(status)
		if e.Date, err = storage.ParseDateColumn(day); err != nil {
			return nil, fmt.Errorf("access log %d: %w", e.ID, err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}
