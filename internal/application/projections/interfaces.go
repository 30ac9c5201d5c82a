package projections

import (
	"context"
	"time"

	"softgym/internal/adapters/storage/client"
	"softgym/internal/adapters/storage/payment"
	"softgym/internal/adapters/storage/user"
	domainAccessLog "softgym/internal/domain/accesslog"
	domainClient "softgym/internal/domain/client"
	domainGym "softgym/internal/domain/gym"
	domainPayment "softgym/internal/domain/payment"
	domainUser "softgym/internal/domain/user"
)

// ClientStore interface for client queries.
type ClientStore interface {
	GetByID(ctx context.Context, id int64) (domainClient.Client, error)
	List(ctx context.Context, filter client.ListFilter) ([]domainClient.Client, error)
	Count(ctx context.Context, filter client.ListFilter) (int, error)
}

// PaymentStore interface for payment queries.
type PaymentStore interface {
	ListByClient(ctx context.Context, clientID int64) ([]domainPayment.Payment, error)
	ListByGym(ctx context.Context, filter payment.GymFilter) ([]payment.GymPayment, error)
}

// AccessLogStore interface for access log queries.
type AccessLogStore interface {
	ListByDate(ctx context.Context, gymID int64, date time.Time) ([]domainAccessLog.Entry, error)
}

// UserStore interface for user queries.
type UserStore interface {
	List(ctx context.Context, filter user.ListFilter) ([]domainUser.User, error)
}

// GymStore interface for gym queries.
type GymStore interface {
	List(ctx context.Context) ([]domainGym.Gym, error)
}
