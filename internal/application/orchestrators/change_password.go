package orchestrators

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"softgym/internal/domain/apperr"
	"softgym/internal/domain/tenant"
	"softgym/internal/domain/user"
)

// UserStoreForPassword defines the store interface needed by the password flows.
type UserStoreForPassword interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	Scope           tenant.Scope
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required"`
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	UserStore UserStoreForPassword
}

var (
	ErrCurrentPasswordWrong = apperr.Validation("current password", "is incorrect")
	ErrNewPasswordSame      = apperr.Validation("new password", "must be different from the current password")
)

// ExecuteChangePassword verifies the current password of the session user and replaces it.
// PRE: Scope identifies a signed-in user
// POST: the stored hash matches NewPassword
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	if err := input.Scope.Require(); err != nil {
		return err
	}
	if err := validateInput(input); err != nil {
		return err
	}

	u, err := deps.UserStore.GetByID(ctx, input.Scope.UserID)
	if err != nil {
		return err
	}
	if err := input.Scope.RequireOwner("user", u.ID, u.GymID); err != nil {
		return err
	}
	if err := u.CheckPassword(input.CurrentPassword); err != nil {
		return ErrCurrentPasswordWrong
	}
	if input.CurrentPassword == input.NewPassword {
		return ErrNewPasswordSame
	}
	if err := u.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := deps.UserStore.UpdatePassword(ctx, u.ID, u.PasswordHash); err != nil {
		return err
	}

	zap.L().Info("auth_event", zap.String("event", "password_changed"), zap.Int64("user_id", u.ID))
	return nil
}

// ResetPasswordInput carries input for the administrative reset.
type ResetPasswordInput struct {
	Username    string `form:"username" validate:"required"`
	NewPassword string `form:"new_password" validate:"required"`
}

// ErrUserNotFound is returned by the administrative flows for an unknown username.
var ErrUserNotFound = errors.New("user not found")

// ExecuteResetPassword replaces a user's password without the current one.
// Used from the admin console only.
// PRE: operator has shell access to the database host
// POST: the stored hash matches NewPassword, or ErrUserNotFound
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ChangePasswordDeps) error {
	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(input); err != nil {
		return err
	}

	u, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if apperr.IsNotFound(err) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := u.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := deps.UserStore.UpdatePassword(ctx, u.ID, u.PasswordHash); err != nil {
		return err
	}

	zap.L().Info("auth_event", zap.String("event", "password_reset"), zap.String("username", u.Username))
	return nil
}
