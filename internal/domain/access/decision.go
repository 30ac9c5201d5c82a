// Package access decides whether a keypad lookup admits a client.
package access

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"softgym/internal/domain/accesslog"
	"softgym/internal/domain/apperr"
	"softgym/internal/domain/client"
	"softgym/internal/domain/membership"
)

// MaxIdentifierDigits bounds the keypad input length.
const MaxIdentifierDigits = 6

// maxEchoedInput bounds how many characters of a malformed input are copied into the log.
const maxEchoedInput = 12

// ParseIdentifier converts raw keypad input into a client ID.
// PRE: none
// POST: returns 1..999999 or an IdentifierFormatError
func ParseIdentifier(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 || len(strconv.FormatInt(id, 10)) > MaxIdentifierDigits {
		return 0, &apperr.IdentifierFormatError{Raw: raw}
	}
	return id, nil
}

// Outcome is the result of one validation.
type Outcome struct {
	Status      accesslog.Status
	Reason      string
	DisplayName string
	Client      *client.Client // set only when the client belongs to the gym
}

// Permitted reports whether entry is granted.
func (o Outcome) Permitted() bool {
	return o.Status == accesslog.StatusAccepted
}

// Invalid builds the outcome for input that failed ParseIdentifier.
func Invalid(raw string) Outcome {
	echo := strings.TrimSpace(raw)
	if utf8.RuneCountInString(echo) > maxEchoedInput {
		echo = string([]rune(echo)[:maxEchoedInput])
	}
	return Outcome{
		Status:      accesslog.StatusInvalid,
		Reason:      accesslog.ReasonInvalidID,
		DisplayName: placeholder(echo),
	}
}

// Decide applies the access rules for a parsed identifier.
// found is nil when no client has that ID. The name of a client from another
// gym never reaches the outcome.
// PRE: id came from ParseIdentifier; gymID > 0
// POST: exactly one of ACCEPTED/REJECTED is returned
func Decide(id int64, gymID int64, found *client.Client, today time.Time) Outcome {
	if found == nil || found.GymID != gymID {
		return Outcome{
			Status:      accesslog.StatusRejected,
			Reason:      accesslog.ReasonNotRegistered,
			DisplayName: placeholder(strconv.FormatInt(id, 10)),
		}
	}
	c := *found
	if c.CanEnter(today) {
		return Outcome{Status: accesslog.StatusAccepted, DisplayName: c.Name, Client: &c}
	}
	return Outcome{
		Status:      accesslog.StatusRejected,
		Reason:      accesslog.ReasonExpired,
		DisplayName: c.Name,
		Client:      &c,
	}
}

// Entry renders the outcome as the log row to append.
func (o Outcome) Entry(gymID int64, at time.Time) accesslog.Entry {
	e := accesslog.Entry{
		GymID:      gymID,
		ClientName: o.DisplayName,
		Status:     o.Status,
		Reason:     o.Reason,
		Date:       membership.Date(at),
		Time:       at.Format(accesslog.TimeLayout),
	}
	if o.Client != nil {
		e.ClientID = o.Client.ID
	}
	return e
}

func placeholder(id string) string {
	return "ID " + id
}
