package orchestrators

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"softgym/internal/adapters/storage/txn"
	"softgym/internal/domain/client"
	"softgym/internal/domain/membership"
	"softgym/internal/domain/payment"
	"softgym/internal/domain/tenant"
	"softgym/internal/observability"
)

// RegisterClientInput carries input for RegisterClient.
// Amount is the raw form value; "." and "," are accepted as decimal separators.
type RegisterClientInput struct {
	Scope  tenant.Scope
	Name   string `form:"name" validate:"required,max=100"`
	Plan   string `form:"plan" validate:"required"`
	Amount string `form:"amount" validate:"required"`
}

// RegisterClientDeps holds dependencies for RegisterClient.
type RegisterClientDeps struct {
	Tx    txn.Transactor
	Clock Clock
}

// RegisterClientResult carries the new client and its first payment.
type RegisterClientResult struct {
	Client  client.Client
	Payment payment.Payment
}

// ExecuteRegisterClient creates a client in the session gym together with the
// payment that opens its membership.
// PRE: Scope is authenticated
// POST: client.ExpirationDate = today + plan days and exactly one payment
// exists for it, or nothing was written
func ExecuteRegisterClient(ctx context.Context, input RegisterClientInput, deps RegisterClientDeps) (RegisterClientResult, error) {
	if err := input.Scope.Require(); err != nil {
		return RegisterClientResult{}, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return RegisterClientResult{}, err
	}
	plan, err := membership.ParsePlan(input.Plan)
	if err != nil {
		return RegisterClientResult{}, err
	}
	amount, err := payment.ParseAmount(input.Amount)
	if err != nil {
		return RegisterClientResult{}, err
	}

	today := deps.Clock.Today()
	expiration := membership.NextExpiration(time.Time{}, plan, today)
	c := client.Client{
		Name:           input.Name,
		Plan:           plan,
		ExpirationDate: expiration,
		GymID:          input.Scope.GymID,
	}
	if err := c.Validate(); err != nil {
		return RegisterClientResult{}, err
	}

	var p payment.Payment
	err = deps.Tx.WithinTx(ctx, func(ctx context.Context, s txn.Stores) error {
		if err := s.Clients.Create(ctx, &c); err != nil {
			return err
		}
		p = payment.Payment{
			ClientID:            c.ID,
			Plan:                plan,
			Amount:              amount,
			PaymentDate:         today,
			ResultingExpiration: expiration,
		}
		if err := p.Validate(); err != nil {
			return err
		}
		return s.Payments.Create(ctx, &p)
	})
	if err != nil {
		return RegisterClientResult{}, err
	}

	observability.RecordClientRegistered()
	observability.RecordPayment()
	zap.L().Info("payment_event",
		zap.String("event", "client_registered"),
		zap.Int64("gym_id", c.GymID),
		zap.Int64("client_id", c.ID),
		zap.String("plan", plan.String()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("expiration", expiration.Format(membership.DateLayout)),
	)
	return RegisterClientResult{Client: c, Payment: p}, nil
}
