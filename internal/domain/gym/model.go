package gym

import (
	"strings"

	"softgym/internal/domain/apperr"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength     = 100
	MaxLocationLength = 100
)

// Gym is the tenant boundary: users and clients belong to exactly one.
type Gym struct {
	ID       int64
	Name     string
	Location string
}

// Validate checks if the Gym has valid data.
// PRE: Gym struct is populated
// POST: Returns nil if valid, a ValidationError otherwise
func (g *Gym) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return apperr.Validation("gym name", "cannot be empty")
	}
	if len(g.Name) > MaxNameLength {
		return apperr.Validation("gym name", "cannot exceed 100 characters")
	}
	if len(g.Location) > MaxLocationLength {
		return apperr.Validation("location", "cannot exceed 100 characters")
	}
	return nil
}
