package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"softgym/internal/adapters/storage"
	"softgym/internal/domain/apperr"
	domain "softgym/internal/domain/client"
	"softgym/internal/domain/membership"
)

const selectColumns = "SELECT id, name, plan_type, expiration_date, gym_id FROM client"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new client Store.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a client and assigns its ID.
// PRE: entity has been validated
// POST: entity.ID is set
func (s *SQLiteStore) Create(ctx context.Context, entity *domain.Client) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO client (name, plan_type, expiration_date, gym_id) VALUES (?, ?, ?, ?)",
		entity.Name, entity.Plan.String(), storage.DateValue(entity.ExpirationDate), entity.GymID,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entity.ID = id
	return nil
}

// GetByID retrieves a Client by its ID regardless of gym.
// Callers enforce tenancy on the returned GymID.
// PRE: id > 0
// POST: Returns the entity or a NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	c, err := scanClient(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Client{}, apperr.NotFound("client", id)
	}
	return c, err
}

// Update writes name, plan and expiration. GymID is immutable.
// PRE: entity has been validated
// POST: Returns a NotFoundError when no row matched
func (s *SQLiteStore) Update(ctx context.Context, entity domain.Client) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE client SET name = ?, plan_type = ?, expiration_date = ? WHERE id = ? AND gym_id = ?",
		entity.Name, entity.Plan.String(), storage.DateValue(entity.ExpirationDate), entity.ID, entity.GymID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("client", entity.ID)
	}
	return nil
}

// Delete removes a Client of gymID. Its payments cascade; access log rows keep their snapshot.
// POST: Returns a NotFoundError when no row of that gym matched
func (s *SQLiteStore) Delete(ctx context.Context, id, gymID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM client WHERE id = ? AND gym_id = ?", id, gymID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("client", id)
	}
	return nil
}

// List returns the clients of one gym matching filter.
// PRE: filter.GymID > 0
// POST: Results are ordered by filter.Sort (name by default), ID as tiebreaker
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Client, error) {
	where, args := buildWhere(filter)
	query := selectColumns + where + orderBy(filter)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Client
	for rows.Next() {
		c, err := scanClient(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// Count returns how many clients match filter, ignoring Limit and Offset.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM client"+where, args...).Scan(&n)
	return n, err
}

// likeEscaper makes search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func buildWhere(filter ListFilter) (string, []any) {
	clauses := []string{"gym_id = ?"}
	args := []any{filter.GymID}

	if q := strings.TrimSpace(filter.Search); q != "" {
		pattern := "%" + likeEscaper.Replace(q) + "%"
		if id, err := strconv.ParseInt(q, 10, 64); err == nil {
			clauses = append(clauses, `(id = ? OR name LIKE ? ESCAPE '\')`)
			args = append(args, id, pattern)
		} else {
			clauses = append(clauses, `name LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
	}

	today := membership.Date(filter.Today).Format(membership.DateLayout)
	switch filter.Status {
	case FilterActive:
		clauses = append(clauses, "expiration_date IS NOT NULL AND expiration_date >= ?")
		args = append(args, today)
	case FilterExpired:
		clauses = append(clauses, "(expiration_date IS NULL OR expiration_date < ?)")
		args = append(args, today)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderBy(filter ListFilter) string {
	dir := "ASC"
	if filter.Desc {
		dir = "DESC"
	}
	switch filter.Sort {
	case SortExpiration:
		return fmt.Sprintf(" ORDER BY expiration_date IS NULL, expiration_date %s, id", dir)
	case SortID:
		return " ORDER BY id " + dir
	default:
		return fmt.Sprintf(" ORDER BY name COLLATE NOCASE %s, id", dir)
	}
}

func scanClient(scan func(dest ...any) error) (domain.Client, error) {
	var c domain.Client
	var plan string
	var expiration sql.NullString
	if err := scan(&c.ID, &c.Name, &plan, &expiration, &c.GymID); err != nil {
		return domain.Client{}, err
	}
	p, err := membership.ParsePlan(plan)
	if err != nil {
		return domain.Client{}, fmt.Errorf("client %d: stored plan %q: %w", c.ID, plan, err)
	}
	c.Plan = p
	if c.ExpirationDate, err = storage.ParseDateColumn(expiration); err != nil {
		return domain.Client{}, fmt.Errorf("client %d: %w", c.ID, err)
	}
	return c, nil
}
