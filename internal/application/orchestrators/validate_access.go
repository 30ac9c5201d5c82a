package orchestrators

import (
	"context"

	"go.uber.org/zap"

	"softgym/internal/domain/access"
	"softgym/internal/domain/accesslog"
	"softgym/internal/domain/apperr"
	"softgym/internal/domain/client"
	"softgym/internal/domain/tenant"
	"softgym/internal/observability"
)

// ClientStoreForAccess defines the client lookup needed by ValidateAccess.
type ClientStoreForAccess interface {
	GetByID(ctx context.Context, id int64) (client.Client, error)
}

// AccessLogAppender defines the log write needed by ValidateAccess.
type AccessLogAppender interface {
	Append(ctx context.Context, e *accesslog.Entry) error
}

// ValidateAccessDeps holds dependencies for ValidateAccess.
type ValidateAccessDeps struct {
	ClientStore ClientStoreForAccess
	AccessLogs  AccessLogAppender
	Clock       Clock
}

// ValidateAccessResult carries the decision and the entry that recorded it.
type ValidateAccessResult struct {
	Outcome access.Outcome
	Entry   accesslog.Entry
}

// ExecuteValidateAccess resolves keypad input against the session gym and
// appends exactly one access log entry describing the outcome.
// PRE: Scope is authenticated
// POST: one entry exists per call, whatever the outcome; the name of a client
// of another gym never appears in the result or the log
func ExecuteValidateAccess(ctx context.Context, scope tenant.Scope, raw string, deps ValidateAccessDeps) (ValidateAccessResult, error) {
	if err := scope.Require(); err != nil {
		return ValidateAccessResult{}, err
	}

	now := deps.Clock.Now()
	var outcome access.Outcome
	id, err := access.ParseIdentifier(raw)
	if err != nil {
		outcome = access.Invalid(raw)
	} else {
		var found *client.Client
		c, err := deps.ClientStore.GetByID(ctx, id)
		switch {
		case err == nil:
			found = &c
		case !apperr.IsNotFound(err):
			return ValidateAccessResult{}, err
		}
		outcome = access.Decide(id, scope.GymID, found, now)
	}

	entry := outcome.Entry(scope.GymID, now)
	if err := entry.Validate(); err != nil {
		return ValidateAccessResult{}, err
	}
	if err := deps.AccessLogs.Append(ctx, &entry); err != nil {
		return ValidateAccessResult{}, err
	}

	observability.RecordAccessAttempt(string(outcome.Status))
	zap.L().Info("access_event",
		zap.Int64("gym_id", scope.GymID),
		zap.Int64("client_id", entry.ClientID),
		zap.String("status", string(outcome.Status)),
		zap.String("reason", outcome.Reason),
	)
	return ValidateAccessResult{Outcome: outcome, Entry: entry}, nil
}
