package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"softgym/internal/adapters/storage"
	"softgym/internal/domain/apperr"
	domain "softgym/internal/domain/user"
)

const selectColumns = "SELECT id, username, password_hash, gym_id FROM app_user"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new user Store.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a user and assigns its ID.
// PRE: entity has been validated and carries a password hash
// POST: entity.ID is set, or ErrDuplicateUsername when the name is taken
func (s *SQLiteStore) Create(ctx context.Context, entity *domain.User) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO app_user (username, password_hash, gym_id) VALUES (?, ?, ?)",
		entity.Username, entity.PasswordHash, entity.GymID,
	)
	if storage.IsUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entity.ID = id
	return nil
}

// GetByID retrieves a User by its ID.
// PRE: id > 0
// POST: Returns the entity or a NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperr.NotFound("user", id)
	}
	return u, err
}

// GetByUsername retrieves a User by username.
// PRE: username is non-empty
// POST: Returns the entity or a NotFoundError
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, selectColumns+" WHERE username = ?", username).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperr.NotFound("user", username)
	}
	return u, err
}

// UpdatePassword replaces the stored hash.
// PRE: hash is a bcrypt hash
// POST: Returns a NotFoundError when no row matched
func (s *SQLiteStore) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE app_user SET password_hash = ? WHERE id = ?", hash, id)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}

// Delete removes a User by ID. The gym is left in place.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM app_user WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}

// List returns users ordered by username.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.User, error) {
	query := selectColumns
	var args []any
	if filter.GymID > 0 {
		query += " WHERE gym_id = ?"
		args = append(args, filter.GymID)
	}
	query += " ORDER BY username"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

func scanUser(scan func(dest ...any) error) (domain.User, error) {
	var u domain.User
	err := scan(&u.ID, &u.Username, &u.PasswordHash, &u.GymID)
	return u, err
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}
