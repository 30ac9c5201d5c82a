package accesslog

import (
	"errors"
	"time"
)

// Status is the outcome of one access attempt.
type Status string

// Access outcomes.
const (
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusInvalid  Status = "INVALID"
)

// Reasons recorded alongside non-accepted outcomes.
const (
	ReasonInvalidID     = "invalid or tampered ID"
	ReasonNotRegistered = "client not registered or outside gym"
	ReasonExpired       = "membership expired"
)

// TimeLayout is the wall-clock format used for storage.
const TimeLayout = "15:04:05"

// Entry is an append-only record of one keypad lookup.
// ClientName is a snapshot taken at the time of the attempt.
type Entry struct {
	ID         int64
	ClientID   int64 // zero when the attempt did not resolve to a client of this gym
	GymID      int64
	ClientName string
	Status     Status
	Reason     string
	Date       time.Time // civil date
	Time       string    // HH:MM:SS
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (e *Entry) Validate() error {
	if e.GymID <= 0 {
		return errors.New("access log entry must belong to a gym")
	}
	switch e.Status {
	case StatusAccepted, StatusRejected, StatusInvalid:
	default:
		return errors.New("access log status must be ACCEPTED, REJECTED or INVALID")
	}
	if e.Status == StatusInvalid && e.ClientID != 0 {
		return errors.New("an invalid attempt cannot reference a client")
	}
	if e.Date.IsZero() {
		return errors.New("access log date must be set")
	}
	if _, err := time.Parse(TimeLayout, e.Time); err != nil {
		return errors.New("access log time must be HH:MM:SS")
	}
	return nil
}

// HasClient reports whether the entry is associated with a real client.
func (e *Entry) HasClient() bool {
	return e.ClientID != 0
}

// Accepted reports whether entry was granted.
func (e *Entry) Accepted() bool {
	return e.Status == StatusAccepted
}
