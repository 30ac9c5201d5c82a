package projections

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"softgym/internal/domain/accounting"
	domainClient "softgym/internal/domain/client"
	domainPayment "softgym/internal/domain/payment"
	"softgym/internal/domain/tenant"
)

// GetPaymentHistoryQuery carries query parameters.
type GetPaymentHistoryQuery struct {
	Scope    tenant.Scope
	ClientID int64
}

// GetPaymentHistoryResult carries the query result.
type GetPaymentHistoryResult struct {
	Client   domainClient.Client
	Payments []domainPayment.Payment // newest first
	Total    decimal.Decimal
}

// GetPaymentHistoryDeps holds dependencies for GetPaymentHistory.
type GetPaymentHistoryDeps struct {
	ClientStore  ClientStore
	PaymentStore PaymentStore
}

// QueryGetPaymentHistory returns one client's payments, newest first.
// PRE: Scope is authenticated
// POST: clients of another gym yield an AuthorizationError and no payments
func QueryGetPaymentHistory(ctx context.Context, query GetPaymentHistoryQuery, deps GetPaymentHistoryDeps) (GetPaymentHistoryResult, error) {
	if err := query.Scope.Require(); err != nil {
		return GetPaymentHistoryResult{}, err
	}
	c, err := QueryGetClient(ctx, query.Scope, query.ClientID, GetClientDeps{ClientStore: deps.ClientStore})
	if err != nil {
		return GetPaymentHistoryResult{}, err
	}

	payments, err := deps.PaymentStore.ListByClient(ctx, c.ID)
	if err != nil {
		return GetPaymentHistoryResult{}, err
	}
	return GetPaymentHistoryResult{
		Client:   c,
		Payments: payments,
		Total:    accounting.Total(payments),
	}, nil
}

// GetClientDeps holds dependencies for GetClient.
type GetClientDeps struct {
	ClientStore ClientStore
}

// QueryGetClient loads one client of the session gym.
// PRE: Scope is authenticated
// POST: clients of another gym yield an AuthorizationError, never their data
func QueryGetClient(ctx context.Context, scope tenant.Scope, clientID int64, deps GetClientDeps) (domainClient.Client, error) {
	if err := scope.Require(); err != nil {
		return domainClient.Client{}, err
	}
	c, err := deps.ClientStore.GetByID(ctx, clientID)
	if err != nil {
		return domainClient.Client{}, err
	}
	if err := scope.RequireOwner("client", c.ID, c.GymID); err != nil {
		zap.L().Warn("auth_event",
			zap.String("event", "cross_gym_denied"),
			zap.Int64("user_id", scope.UserID),
			zap.Int64("gym_id", scope.GymID),
			zap.Int64("client_id", clientID),
		)
		return domainClient.Client{}, err
	}
	return c, nil
}
