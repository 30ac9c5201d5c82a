package gym

import (
	"context"

	domain "softgym/internal/domain/gym"
)

// Store persists Gym state.
type Store interface {
	Create(ctx context.Context, value *domain.Gym) error
	GetByID(ctx context.Context, id int64) (domain.Gym, error)
	List(ctx context.Context) ([]domain.Gym, error)
}
