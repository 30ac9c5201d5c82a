package projections

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"softgym/internal/adapters/storage/payment"
	"softgym/internal/domain/accounting"
	"softgym/internal/domain/apperr"
	"softgym/internal/domain/membership"
	domainPayment "softgym/internal/domain/payment"
	"softgym/internal/domain/tenant"
)

// GetClosingReportQuery carries query parameters.
// A zero Start or End defaults to Today.
type GetClosingReportQuery struct {
	Scope tenant.Scope
	Start time.Time
	End   time.Time
	Today time.Time
}

// GetClosingReportResult carries the query result.
type GetClosingReportResult struct {
	Start    time.Time
	End      time.Time
	Payments []payment.GymPayment // newest first
	Total    decimal.Decimal
	Summary  accounting.Summary // payments dated Today
}

// GetClosingReportDeps holds dependencies for GetClosingReport.
type GetClosingReportDeps struct {
	PaymentStore PaymentStore
}

// QueryGetClosingReport builds the cash closing: the payments of a date range
// with their total, and the summary of today's takings.
// PRE: Scope is authenticated
// POST: Start <= End, or a ValidationError is returned
func QueryGetClosingReport(ctx context.Context, query GetClosingReportQuery, deps GetClosingReportDeps) (GetClosingReportResult, error) {
	if err := query.Scope.Require(); err != nil {
		return GetClosingReportResult{}, err
	}
	today := membership.Date(query.Today)
	start, end := query.Start, query.End
	if start.IsZero() {
		start = today
	}
	if end.IsZero() {
		end = today
	}
	start, end = membership.Date(start), membership.Date(end)
	if start.After(end) {
		return GetClosingReportResult{}, apperr.Validation("start", "cannot be after the end date")
	}

	ranged, err := deps.PaymentStore.ListByGym(ctx, payment.GymFilter{GymID: query.Scope.GymID, From: start, To: end})
	if err != nil {
		return GetClosingReportResult{}, err
	}
	todays, err := deps.PaymentStore.ListByGym(ctx, payment.GymFilter{GymID: query.Scope.GymID, From: today, To: today})
	if err != nil {
		return GetClosingReportResult{}, err
	}

	return GetClosingReportResult{
		Start:    start,
		End:      end,
		Payments: ranged,
		Total:    accounting.Total(plain(ranged)),
		Summary:  accounting.Summarize(plain(todays)),
	}, nil
}

func plain(rows []payment.GymPayment) []domainPayment.Payment {
	out := make([]domainPayment.Payment, len(rows))
	for i, r := range rows {
		out[i] = r.Payment
	}
	return out
}
