package client

import (
	"strings"
	"time"

	"softgym/internal/domain/apperr"
	"softgym/internal/domain/membership"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Client is a gym member whose entry is governed by ExpirationDate.
type Client struct {
	ID             int64
	Name           string
	Plan           membership.Plan
	ExpirationDate time.Time // zero until the first payment is recorded
	GymID          int64
}

// Validate checks if the Client has valid data.
// PRE: Client struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name is non-empty, Plan is recognised, GymID is set
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("name", "cannot be empty")
	}
	if len(c.Name) > MaxNameLength {
		return apperr.Validation("name", "cannot exceed 100 characters")
	}
	if !c.Plan.Valid() {
		return apperr.Validation("plan", "must be one of Day, Weekly, Biweekly, Monthly")
	}
	if c.GymID <= 0 {
		return apperr.Validation("gym", "is required")
	}
	return nil
}

// Status returns ACTIVE, EXPIRED or UNKNOWN as of today.
func (c *Client) Status(today time.Time) string {
	return membership.StatusOn(c.ExpirationDate, today)
}

// CanEnter reports whether the membership admits entry on today.
func (c *Client) CanEnter(today time.Time) bool {
	return membership.IsCurrent(c.ExpirationDate, today)
}

// ApplyPayment moves the client onto plan with the given expiration.
// POST: Plan and ExpirationDate reflect the latest payment
func (c *Client) ApplyPayment(plan membership.Plan, expiration time.Time) {
	c.Plan = plan
	c.ExpirationDate = membership.Date(expiration)
}

// Edit replaces name and plan and restarts the membership from today.
// PRE: plan is valid
// POST: ExpirationDate = today + plan.Days()
func (c *Client) Edit(name string, plan membership.Plan, today time.Time) {
	c.Name = strings.TrimSpace(name)
	c.Plan = plan
	c.ExpirationDate = membership.Date(today).AddDate(0, 0, plan.Days())
}
