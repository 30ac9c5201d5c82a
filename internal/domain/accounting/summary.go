package accounting

import (
	"github.com/shopspring/decimal"

	"softgym/internal/domain/payment"
)

// Summary aggregates a set of payments.
type Summary struct {
	Total           decimal.Decimal
	Payments        int
	DistinctClients int
	Average         decimal.Decimal // Total / Payments, zero when there are none
	ByPlan          map[string]int  // plan name -> number of payments
}

// Total sums payment amounts; an empty set sums to zero.
func Total(payments []payment.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Summarize computes totals, distinct paying clients, the average payment
// and the plan mix for payments.
// PRE: none
// POST: Average is zero when there are no payments
func Summarize(payments []payment.Payment) Summary {
	s := Summary{
		Total:    Total(payments),
		Payments: len(payments),
		Average:  decimal.Zero,
		ByPlan:   make(map[string]int),
	}
	clients := make(map[int64]struct{}, len(payments))
	for _, p := range payments {
		clients[p.ClientID] = struct{}{}
		s.ByPlan[p.Plan.String()]++
	}
	s.DistinctClients = len(clients)
	if s.Payments > 0 {
		s.Average = s.Total.DivRound(decimal.NewFromInt(int64(s.Payments)), 2)
	}
	return s
}
