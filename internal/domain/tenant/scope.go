package tenant

import (
	"fmt"

	"softgym/internal/domain/apperr"
)

// Scope identifies the acting user and the gym every operation is confined to.
// It is built by the session layer and passed explicitly into each operation.
type Scope struct {
	UserID int64
	GymID  int64
}

// Require returns an AuthorizationError unless the scope carries a gym.
// PRE: none
// POST: nil only when both identities are set
func (s Scope) Require() error {
	if s.UserID <= 0 || s.GymID <= 0 {
		return apperr.Unauthorized("no authenticated session")
	}
	return nil
}

// Owns reports whether a record belonging to gymID is visible to this scope.
func (s Scope) Owns(gymID int64) bool {
	return s.GymID > 0 && s.GymID == gymID
}

// RequireOwner returns an AuthorizationError when the record is in another gym.
// PRE: Require() succeeded
// POST: nil only when gymID == s.GymID
func (s Scope) RequireOwner(resource string, id, gymID int64) error {
	if !s.Owns(gymID) {
		return apperr.Unauthorized(fmt.Sprintf("%s %d belongs to gym %d, session gym %d", resource, id, gymID, s.GymID))
	}
	return nil
}
