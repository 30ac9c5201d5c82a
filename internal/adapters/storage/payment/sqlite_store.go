package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"softgym/internal/adapters/storage"
	"softgym/internal/domain/membership"
	domain "softgym/internal/domain/payment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new payment Store.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create appends a payment and assigns its ID.
// Amounts are stored as decimal text so no precision is lost.
// PRE: entity has been validated; the client exists
// POST: entity.ID is set
func (s *SQLiteStore) Create(ctx context.Context, entity *domain.Payment) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO payment (client_id, plan_type, amount, payment_date, resulting_expiration) VALUES (?, ?, ?, ?, ?)",
		entity.ClientID,
		entity.Plan.String(),
		entity.Amount.StringFixed(2),
		storage.DateValue(entity.PaymentDate),
		storage.DateValue(entity.ResultingExpiration),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entity.ID = id
	return nil
}

// ListByClient returns a client's payments newest first.
// PRE: clientID > 0
// POST: ordered by payment_date DESC, then ID DESC
func (s *SQLiteStore) ListByClient(ctx context.Context, clientID int64) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, client_id, plan_type, amount, payment_date, resulting_expiration
		FROM payment WHERE client_id = ?
		ORDER BY payment_date DESC, id DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// ListByGym returns payments of filter.GymID dated within [From, To], newest first.
// PRE: filter.From <= filter.To
func (s *SQLiteStore) ListByGym(ctx context.Context, filter GymFilter) ([]GymPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.client_id, p.plan_type, p.amount, p.payment_date, p.resulting_expiration, c.name
		FROM payment p JOIN client c ON c.id = p.client_id
		WHERE c.gym_id = ? AND p.payment_date BETWEEN ? AND ?
		ORDER BY p.payment_date DESC, p.id DESC`,
		filter.GymID,
		membership.Date(filter.From).Format(membership.DateLayout),
		membership.Date(filter.To).Format(membership.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GymPayment
	for rows.Next() {
		var row GymPayment
		p, err := scanPayment(func(dest ...any) error {
			return rows.Scan(append(dest, &row.ClientName)...)
		})
		if err != nil {
			return nil, err
		}
		row.Payment = p
		results = append(results, row)
	}
	return results, rows.Err()
}

func scanPayment(scan func(dest ...any) error) (domain.Payment, error) {
	var p domain.Payment
	var plan, amount string
	var paid, expires sql.NullString
	if err := scan(&p.ID, &p.ClientID, &plan, &amount, &paid, &expires); err != nil {
		return domain.Payment{}, err
	}

	var err error
	if p.Plan, err = membership.ParsePlan(plan); err != nil {
		return domain.Payment{}, fmt.Errorf("payment %d: stored plan %q: %w", p.ID, plan, err)
	}
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return domain.Payment{}, fmt.Errorf("payment %d: stored amount %q: %w", p.ID, amount, err)
	}
	if p.PaymentDate, err = storage.ParseDateColumn(paid); err != nil {
		return domain.Payment{}, fmt.Errorf("payment %d: %w", p.ID, err)
	}
	if p.ResultingExpiration, err = storage.ParseDateColumn(expires); err != nil {
		return domain.Payment{}, fmt.Errorf("payment %d: %w", p.ID, err)
	}
	return p, nil
}
