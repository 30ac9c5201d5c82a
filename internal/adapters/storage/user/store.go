package user

import (
	"context"
	"errors"

	domain "softgym/internal/domain/user"
)

// ErrDuplicateUsername is returned by Create when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// Store persists User state.
type Store interface {
	Create(ctx context.Context, value *domain.User) error
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	GymID int64 // zero lists every gym
}
