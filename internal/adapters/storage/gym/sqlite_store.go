package gym

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"softgym/internal/adapters/storage"
	"softgym/internal/domain/apperr"
	domain "softgym/internal/domain/gym"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new gym Store.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a gym and assigns its ID.
// PRE: entity has been validated
// POST: entity.ID is set
func (s *SQLiteStore) Create(ctx context.Context, entity *domain.Gym) error {
	res, err := s.db.ExecContext(ctx, "INSERT INTO gym (name, location) VALUES (?, ?)", entity.Name, entity.Location)
	if err != nil {
		return fmt.Errorf("insert gym: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entity.ID = id
	return nil
}

// GetByID retrieves a Gym by its ID.
// PRE: id > 0
// POST: Returns the entity or a NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Gym, error) {
	var g domain.Gym
	err := s.db.QueryRowContext(ctx, "SELECT id, name, location FROM gym WHERE id = ?", id).Scan(&g.ID, &g.Name, &g.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Gym{}, apperr.NotFound("gym", id)
	}
	return g, err
}

// List returns every gym ordered by ID.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Gym, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, location FROM gym ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Gym
	for rows.Next() {
		var g domain.Gym
		if err := rows.Scan(&g.ID, &g.Name, &g.Location); err != nil {
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}
