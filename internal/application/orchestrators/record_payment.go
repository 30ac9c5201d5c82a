package orchestrators

import (
	"context"

	"go.uber.org/zap"

	"softgym/internal/adapters/storage/txn"
	"softgym/internal/domain/client"
	"softgym/internal/domain/membership"
	"softgym/internal/domain/payment"
	"softgym/internal/domain/tenant"
	"softgym/internal/observability"
)

// RecordPaymentInput carries input for RecordPayment.
type RecordPaymentInput struct {
	Scope    tenant.Scope
	ClientID int64  `form:"id" validate:"gt=0"`
	Plan     string `form:"plan" validate:"required"`
	Amount   string `form:"amount" validate:"required"`
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	Tx    txn.Transactor
	Clock Clock
}

// RecordPaymentResult carries the payment and the client as updated.
type RecordPaymentResult struct {
	Client  client.Client
	Payment payment.Payment
}

// ExecuteRecordPayment renews a client's membership.
// An unexpired membership is extended from its current expiration; a lapsed
// one restarts from today.
// PRE: Scope is authenticated
// POST: one payment is appended and the client's plan and expiration match it,
// or nothing was written
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, deps RecordPaymentDeps) (RecordPaymentResult, error) {
	if err := input.Scope.Require(); err != nil {
		return RecordPaymentResult{}, err
	}
	if err := validateInput(input); err != nil {
		return RecordPaymentResult{}, err
	}
	plan, err := membership.ParsePlan(input.Plan)
	if err != nil {
		return RecordPaymentResult{}, err
	}
	amount, err := payment.ParseAmount(input.Amount)
	if err != nil {
		return RecordPaymentResult{}, err
	}

	today := deps.Clock.Today()
	var result RecordPaymentResult
	err = deps.Tx.WithinTx(ctx, func(ctx context.Context, s txn.Stores) error {
		c, err := loadOwnedClient(ctx, input.Scope, input.ClientID, s.Clients)
		if err != nil {
			return err
		}

		expiration := membership.NextExpiration(c.ExpirationDate, plan, today)
		p := payment.Payment{
			ClientID:            c.ID,
			Plan:                plan,
			Amount:              amount,
			PaymentDate:         today,
			ResultingExpiration: expiration,
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := s.Payments.Create(ctx, &p); err != nil {
			return err
		}

		c.ApplyPayment(plan, expiration)
		if err := s.Clients.Update(ctx, c); err != nil {
			return err
		}
		result = RecordPaymentResult{Client: c, Payment: p}
		return nil
	})
	if err != nil {
		return RecordPaymentResult{}, err
	}

	observability.RecordPayment()
	zap.L().Info("payment_event",
		zap.String("event", "payment_recorded"),
		zap.Int64("gym_id", result.Client.GymID),
		zap.Int64("client_id", result.Client.ID),
		zap.String("plan", plan.String()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("expiration", result.Payment.ResultingExpiration.Format(membership.DateLayout)),
	)
	return result, nil
}
