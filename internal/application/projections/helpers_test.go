package projections

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"softgym/internal/adapters/storage/storagetest"
	"softgym/internal/adapters/storage/txn"
	domainAccessLog "softgym/internal/domain/accesslog"
	domainClient "softgym/internal/domain/client"
	"softgym/internal/domain/membership"
	domainPayment "softgym/internal/domain/payment"
	"softgym/internal/domain/tenant"
)

// today is the reference civil date for every projection test.
var today = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

type env struct {
	stores txn.Stores
	gymA   tenant.Scope
	gymB   tenant.Scope
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := storagetest.Open(t)
	return env{
		stores: txn.Bind(db),
		gymA:   tenant.Scope{UserID: 1, GymID: storagetest.SeedGym(t, db, "Gym A")},
		gymB:   tenant.Scope{UserID: 2, GymID: storagetest.SeedGym(t, db, "Gym B")},
	}
}

// addClient stores a client expiring offset days from today; a nil offset
// leaves the client without any payment.
func (e env) addClient(t *testing.T, scope tenant.Scope, name string, offset *int) domainClient.Client {
	t.Helper()
	c := domainClient.Client{Name: name, Plan: membership.Monthly, GymID: scope.GymID}
	if offset != nil {
		c.ExpirationDate = day(*offset)
	}
	require.NoError(t, e.stores.Clients.Create(context.Background(), &c))
	return c
}

func (e env) addPayment(t *testing.T, c domainClient.Client, plan membership.Plan, amount string, paidOn time.Time) domainPayment.Payment {
	t.Helper()
	p := domainPayment.Payment{
		ClientID:            c.ID,
		Plan:                plan,
		Amount:              decimal.RequireFromString(amount),
		PaymentDate:         paidOn,
		ResultingExpiration: paidOn.AddDate(0, 0, plan.Days()),
	}
	require.NoError(t, e.stores.Payments.Create(context.Background(), &p))
	return p
}

func (e env) addAccess(t *testing.T, scope tenant.Scope, name string, status domainAccessLog.Status, on time.Time, at string) {
	t.Helper()
	entry := domainAccessLog.Entry{GymID: scope.GymID, ClientName: name, Status: status, Date: on, Time: at}
	require.NoError(t, e.stores.AccessLogs.Append(context.Background(), &entry))
}

func intPtr(v int) *int { return &v }
