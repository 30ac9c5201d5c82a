package membership

import (
	"strings"
	"time"

	"softgym/internal/domain/apperr"
)

// DateLayout is the civil-date format used for storage and forms.
const DateLayout = "2006-01-02"

// Plan is a billing interval. The zero value means "no plan".
type Plan int

// Recognised plans.
const (
	Day Plan = iota + 1
	Weekly
	Biweekly
	Monthly
)

// Membership status values shown on the roster.
const (
	StatusActive  = "ACTIVE"
	StatusExpired = "EXPIRED"
	StatusUnknown = "UNKNOWN"
)

// Plans lists every plan in display order.
var Plans = []Plan{Day, Weekly, Biweekly, Monthly}

// legacyNames maps labels written by earlier deployments to plans.
var legacyNames = map[string]Plan{
	"día":       Day,
	"dia":       Day,
	"semanal":   Weekly,
	"quincenal": Biweekly,
	"mensual":   Monthly,
}

// Days returns the number of days the plan grants.
// INVARIANT: the zero Plan grants nothing
func (p Plan) Days() int {
	switch p {
	case Day:
		return 1
	case Weekly:
		return 7
	case Biweekly:
		return 15
	case Monthly:
		return 30
	}
	return 0
}

// String returns the canonical plan name.
func (p Plan) String() string {
	switch p {
	case Day:
		return "Day"
	case Weekly:
		return "Weekly"
	case Biweekly:
		return "Biweekly"
	case Monthly:
		return "Monthly"
	}
	return ""
}

// Valid reports whether p is one of the recognised plans.
func (p Plan) Valid() bool {
	return p.Days() > 0
}

// ParsePlan resolves a plan name, case-insensitively, accepting legacy labels.
// PRE: none
// POST: returns a valid Plan or a ValidationError
func ParsePlan(s string) (Plan, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return 0, apperr.Validation("plan", "is required")
	}
	for _, p := range Plans {
		if strings.ToLower(p.String()) == name {
			return p, nil
		}
	}
	if p, ok := legacyNames[name]; ok {
		return p, nil
	}
	return 0, apperr.Validation("plan", "must be one of Day, Weekly, Biweekly, Monthly")
}

// Date truncates t to its civil date in t's own location, expressed at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperr.Validation("date", "must be formatted YYYY-MM-DD")
	}
	return t, nil
}

// NextExpiration computes the expiration after paying for plan on reference.
// An unexpired membership (current on or after reference) stacks the new days
// on top of current; a lapsed or missing one restarts from reference.
// PRE: current is zero or a civil date; reference is a civil date
// POST: returns a civil date
func NextExpiration(current time.Time, plan Plan, reference time.Time) time.Time {
	ref := Date(reference)
	base := ref
	if !current.IsZero() {
		if cur := Date(current); !cur.Before(ref) {
			base = cur
		}
	}
	return base.AddDate(0, 0, plan.Days())
}

// IsCurrent reports whether a membership expiring on expiration admits entry on today.
func IsCurrent(expiration, today time.Time) bool {
	if expiration.IsZero() {
		return false
	}
	return !Date(expiration).Before(Date(today))
}

// StatusOn classifies an expiration date relative to today.
func StatusOn(expiration, today time.Time) string {
	if expiration.IsZero() {
		return StatusUnknown
	}
	if IsCurrent(expiration, today) {
		return StatusActive
	}
	return StatusExpired
}
