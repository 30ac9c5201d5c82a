package orchestrators

import (
	"time"

	"softgym/internal/domain/membership"
)

// Clock returns the current instant in the gym's time zone.
// A nil Clock falls back to time.Now in the process zone.
type Clock func() time.Time

// Now returns the current instant.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Today returns the civil date of Now.
func (c Clock) Today() time.Time {
	return membership.Date(c.Now())
}

// InLocation builds a Clock that reports wall time in loc.
func InLocation(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}
