package client

import (
	"context"
	"time"

	domain "softgym/internal/domain/client"
)

// Store persists Client state.
type Store interface {
	Create(ctx context.Context, value *domain.Client) error
	GetByID(ctx context.Context, id int64) (domain.Client, error)
	Update(ctx context.Context, value domain.Client) error
	Delete(ctx context.Context, id, gymID int64) error
	List(ctx context.Context, filter ListFilter) ([]domain.Client, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// Membership status filters understood by ListFilter.Status.
const (
	FilterActive  = "active"
	FilterExpired = "expired"
)

// Sort columns understood by ListFilter.Sort.
const (
	SortName       = "name"
	SortExpiration = "expiration"
	SortID         = "id"
)

// ListFilter carries filtering parameters for List and Count.
// GymID is mandatory; a zero GymID matches nothing.
type ListFilter struct {
	GymID  int64
	Search string    // case-insensitive substring of the name, or an exact ID
	Status string    // FilterActive, FilterExpired or "" for all
	Today  time.Time // reference date for Status
	Sort   string
	Desc   bool
	Limit  int
	Offset int
}
