package payment

import (
	"context"
	"time"

	domain "softgym/internal/domain/payment"
)

// Store persists Payment state. Payments are append-only.
type Store interface {
	Create(ctx context.Context, value *domain.Payment) error
	ListByClient(ctx context.Context, clientID int64) ([]domain.Payment, error)
	ListByGym(ctx context.Context, filter GymFilter) ([]GymPayment, error)
}

// GymFilter selects payments of one gym in a closed date interval.
type GymFilter struct {
	GymID int64
	From  time.Time // inclusive civil date
	To    time.Time // inclusive civil date
}

// GymPayment is a payment joined with the current name of its client.
type GymPayment struct {
	domain.Payment
	ClientName string
}
