package user

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"softgym/internal/domain/apperr"
)

// Max length constants for user-editable fields.
const (
	MaxUsernameLength = 80
	MinPasswordLength = 8
)

// bcryptCost is the work factor for new password hashes.
const bcryptCost = 12

// Domain errors
var (
	ErrEmptyPassword    = apperr.Validation("password", "cannot be empty")
	ErrPasswordTooShort = apperr.Validation("password", "must be at least 8 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// dummyHash is compared against when no user matches, so a lookup miss costs
// the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("softgym-placeholder"), bcryptCost)

// User is a staff login owned by one gym.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	GymID        int64
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, a ValidationError otherwise
func (u *User) Validate() error {
	name := strings.TrimSpace(u.Username)
	if name == "" {
		return apperr.Validation("username", "cannot be empty")
	}
	if len(name) > MaxUsernameLength {
		return apperr.Validation("username", "cannot exceed 80 characters")
	}
	if strings.ContainsAny(name, " \t\n") {
		return apperr.Validation("username", "cannot contain whitespace")
	}
	if u.GymID <= 0 {
		return apperr.Validation("gym", "is required")
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is at least MinPasswordLength characters
// POST: PasswordHash is set to a bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// BurnPasswordCheck performs a comparison against a throwaway hash.
// Callers use it when the username did not resolve.
func BurnPasswordCheck(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plaintext))
}
