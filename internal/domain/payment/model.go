package payment

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"softgym/internal/domain/apperr"
	"softgym/internal/domain/membership"
)

// Payment is an immutable ledger entry for one client.
type Payment struct {
	ID                  int64
	ClientID            int64
	Plan                membership.Plan
	Amount              decimal.Decimal
	PaymentDate         time.Time
	ResultingExpiration time.Time
}

// MaxAmount is the largest amount a single payment may record.
var MaxAmount = decimal.NewFromInt(10_000_000)

// amountPattern is plain positional notation: no sign, exponent or grouping.
var amountPattern = regexp.MustCompile(`^[0-9]{1,12}(\.[0-9]{1,12})?$`)

// ParseAmount reads a monetary amount typed into a form.
// Both "." and "," are accepted as the decimal separator.
// PRE: none
// POST: returns an amount in [0, MaxAmount] rounded to cents, or a ValidationError
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, apperr.Validation("amount", "is required")
	}
	if strings.Count(raw, ",") == 1 && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	if strings.HasPrefix(raw, "-") {
		if _, err := decimal.NewFromString(raw); err == nil {
			return decimal.Zero, apperr.Validation("amount", "cannot be negative")
		}
	}
	if !amountPattern.MatchString(raw) {
		return decimal.Zero, apperr.Validation("amount", "must be a number like 150 or 150.50")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperr.Validation("amount", "must be a number like 150 or 150.50")
	}
	amount = amount.Round(2)
	if amount.GreaterThan(MaxAmount) {
		return decimal.Zero, apperr.Validation("amount", "cannot exceed "+MaxAmount.String())
	}
	return amount, nil
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Payment) Validate() error {
	if p.ClientID <= 0 {
		return apperr.Validation("client", "is required")
	}
	if !p.Plan.Valid() {
		return apperr.Validation("plan", "must be one of Day, Weekly, Biweekly, Monthly")
	}
	if p.Amount.IsNegative() {
		return apperr.Validation("amount", "cannot be negative")
	}
	if p.Amount.GreaterThan(MaxAmount) {
		return apperr.Validation("amount", "cannot exceed "+MaxAmount.String())
	}
	if p.PaymentDate.IsZero() {
		return apperr.Validation("payment date", "is required")
	}
	if p.ResultingExpiration.Before(p.PaymentDate) {
		return apperr.Validation("expiration", "cannot precede the payment date")
	}
	return nil
}
