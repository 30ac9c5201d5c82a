package accesslog

import (
	"context"
	"time"

	domain "softgym/internal/domain/accesslog"
)

// Store persists access log entries. Entries are never updated.
type Store interface {
	Append(ctx context.Context, value *domain.Entry) error
	ListByDate(ctx context.Context, gymID int64, date time.Time) ([]domain.Entry, error)
}
