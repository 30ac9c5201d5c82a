package orchestrators

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"softgym/internal/domain/apperr"
	"softgym/internal/domain/user"
)

// UserStoreForDelete defines the store interface needed by DeleteUser.
type UserStoreForDelete interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	UserStore UserStoreForDelete
}

// ExecuteDeleteUser removes a login by username. The gym and its clients remain.
// PRE: caller has confirmed the deletion
// POST: the user no longer exists, or ErrUserNotFound
func ExecuteDeleteUser(ctx context.Context, username string, deps DeleteUserDeps) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperr.Validation("username", "is required")
	}

	u, err := deps.UserStore.GetByUsername(ctx, username)
	if apperr.IsNotFound(err) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := deps.UserStore.Delete(ctx, u.ID); err != nil {
		return err
	}

	zap.L().Info("auth_event",
		zap.String("event", "user_deleted"),
		zap.String("username", u.Username),
		zap.Int64("gym_id", u.GymID),
	)
	return nil
}
