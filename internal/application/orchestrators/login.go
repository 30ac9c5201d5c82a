package orchestrators

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"softgym/internal/domain/apperr"
	"softgym/internal/domain/user"
)

// UserStoreForLogin defines the store interface needed by Login.
type UserStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	UserID   int64
	Username string
	GymID    int64
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStoreForLogin
}

// ErrInvalidCredentials is the single failure reported for any bad login.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ExecuteLogin validates credentials and returns the identity for session creation.
// PRE: none
// POST: Returns the user's identity, or ErrInvalidCredentials for an unknown
// username or a wrong password without distinguishing the two
// INVARIANT: a bcrypt comparison is performed on every attempt with a password
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		if !apperr.IsNotFound(err) {
			return LoginResult{}, err
		}
		user.BurnPasswordCheck(input.Password)
		zap.L().Info("auth_event",
			zap.String("event", "login_failed"),
			zap.String("username", input.Username),
			zap.String("reason", "not_found"),
		)
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := u.CheckPassword(input.Password); err != nil {
		zap.L().Info("auth_event",
			zap.String("event", "login_failed"),
			zap.String("username", input.Username),
			zap.String("reason", "wrong_password"),
		)
		return LoginResult{}, ErrInvalidCredentials
	}

	zap.L().Info("auth_event",
		zap.String("event", "login_success"),
		zap.Int64("user_id", u.ID),
		zap.Int64("gym_id", u.GymID),
	)
	return LoginResult{UserID: u.ID, Username: u.Username, GymID: u.GymID}, nil
}
