package projections

import (
	"context"
	"time"

	domainAccessLog "softgym/internal/domain/accesslog"
	"softgym/internal/domain/membership"
	"softgym/internal/domain/tenant"
)

// GetDailyAccessQuery carries query parameters.
type GetDailyAccessQuery struct {
	Scope tenant.Scope
	Date  time.Time // civil date; zero means Today
	Today time.Time
}

// GetDailyAccessResult carries the query result.
type GetDailyAccessResult struct {
	Date     time.Time
	Entries  []domainAccessLog.Entry // newest first
	Accepted int
	Rejected int
	Invalid  int
}

// GetDailyAccessDeps holds dependencies for GetDailyAccess.
type GetDailyAccessDeps struct {
	AccessLogStore AccessLogStore
}

// QueryGetDailyAccess lists the access attempts of the session gym on one date.
// PRE: Scope is authenticated
// POST: only entries of Scope.GymID are returned, newest first
func QueryGetDailyAccess(ctx context.Context, query GetDailyAccessQuery, deps GetDailyAccessDeps) (GetDailyAccessResult, error) {
	if err := query.Scope.Require(); err != nil {
		return GetDailyAccessResult{}, err
	}
	date := query.Date
	if date.IsZero() {
		date = query.Today
	}
	date = membership.Date(date)

	entries, err := deps.AccessLogStore.ListByDate(ctx, query.Scope.GymID, date)
	if err != nil {
		return GetDailyAccessResult{}, err
	}
	result := GetDailyAccessResult{Date: date, Entries: entries}
	for _, e := range entries {
		switch e.Status {
		case domainAccessLog.StatusAccepted:
			result.Accepted++
		case domainAccessLog.StatusRejected:
			result.Rejected++
		case domainAccessLog.StatusInvalid:
			result.Invalid++
		}
	}
	return result, nil
}
