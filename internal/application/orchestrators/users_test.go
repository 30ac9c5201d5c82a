package orchestrators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softgym/internal/domain/apperr"
	"softgym/internal/domain/tenant"
)

func TestExecuteLogin(t *testing.T) {
	store := newMockUserStore()
	u := store.add(t, "recepcion", "correct horse", 7)

	tests := []struct {
		name     string
		input    LoginInput
		wantErr  error
		wantUser int64
	}{
		{"success", LoginInput{Username: "recepcion", Password: "correct horse"}, nil, u.ID},
		{"wrong password", LoginInput{Username: "recepcion", Password: "wrong horse!"}, ErrInvalidCredentials, 0},
		{"unknown user", LoginInput{Username: "ghost", Password: "correct horse"}, ErrInvalidCredentials, 0},
		{"empty password", LoginInput{Username: "recepcion"}, ErrInvalidCredentials, 0},
		{"empty username", LoginInput{Password: "x"}, ErrInvalidCredentials, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ExecuteLogin(context.Background(), tt.input, LoginDeps{UserStore: store})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "invalid username or password", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, res.UserID)
			assert.Equal(t, int64(7), res.GymID)
			assert.Equal(t, "recepcion", res.Username)
		})
	}
}

func TestExecuteLogin_StoreFailureIsNotMasked(t *testing.T) {
	store := newMockUserStore()
	store.err = errStore

	_, err := ExecuteLogin(context.Background(), LoginInput{Username: "a", Password: "b"}, LoginDeps{UserStore: store})
	assert.ErrorIs(t, err, errStore)
}

func TestExecuteCreateUser(t *testing.T) {
	env := newSQLiteEnv(t)
	deps := CreateUserDeps{GymStore: env.stores.Gyms, UserStore: env.stores.Users}
	ctx := context.Background()

	u, err := ExecuteCreateUser(ctx, CreateUserInput{GymID: env.gymA.GymID, Username: " frontdesk ", Password: "long enough"}, deps)
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", u.Username)
	assert.NotEmpty(t, u.PasswordHash)
	require.NoError(t, u.CheckPassword("long enough"))

	_, err = ExecuteCreateUser(ctx, CreateUserInput{GymID: env.gymB.GymID, Username: "frontdesk", Password: "long enough"}, deps)
	require.True(t, apperr.IsValidation(err))
	assert.Equal(t, "username: already exists", err.Error())

	_, err = ExecuteCreateUser(ctx, CreateUserInput{GymID: 999, Username: "other", Password: "long enough"}, deps)
	assert.True(t, apperr.IsNotFound(err))

	_, err = ExecuteCreateUser(ctx, CreateUserInput{GymID: env.gymA.GymID, Username: "short", Password: "tiny"}, deps)
	assert.True(t, apperr.IsValidation(err))

	_, err = ExecuteCreateUser(ctx, CreateUserInput{GymID: env.gymA.GymID, Password: "long enough"}, deps)
	require.True(t, apperr.IsValidation(err))
	assert.Equal(t, "username: is required", err.Error())
}

func TestExecuteCreateGymWithUser(t *testing.T) {
	env := newSQLiteEnv(t)
	deps := CreateGymWithUserDeps{Tx: env.tx}
	ctx := context.Background()
	gymsBefore := env.count(t, "gym")

	res, err := ExecuteCreateGymWithUser(ctx, CreateGymWithUserInput{
		GymName: "Iron Temple", Location: "Centro", Username: "owner", Password: "long enough",
	}, deps)
	require.NoError(t, err)
	assert.NotZero(t, res.Gym.ID)
	assert.Equal(t, res.Gym.ID, res.User.GymID)
	assert.Equal(t, gymsBefore+1, env.count(t, "gym"))

	t.Run("duplicate username rolls back the gym", func(t *testing.T) {
		_, err := ExecuteCreateGymWithUser(ctx, CreateGymWithUserInput{
			GymName: "Copycat", Username: "owner", Password: "long enough",
		}, deps)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, gymsBefore+1, env.count(t, "gym"))
	})

	t.Run("whitespace username rolls back the gym", func(t *testing.T) {
		_, err := ExecuteCreateGymWithUser(ctx, CreateGymWithUserInput{
			GymName: "Spaces", Username: "front desk", Password: "long enough",
		}, deps)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, gymsBefore+1, env.count(t, "gym"))
	})

	t.Run("missing gym name", func(t *testing.T) {
		_, err := ExecuteCreateGymWithUser(ctx, CreateGymWithUserInput{Username: "x", Password: "long enough"}, deps)
		require.True(t, apperr.IsValidation(err))
		assert.Equal(t, "gym_name: is required", err.Error())
	})
}

func TestExecuteChangePassword(t *testing.T) {
	store := newMockUserStore()
	u := store.add(t, "recepcion", "old password", 3)
	scope := tenant.Scope{UserID: u.ID, GymID: 3}
	deps := ChangePasswordDeps{UserStore: store}
	ctx := context.Background()

	tests := []struct {
		name    string
		input   ChangePasswordInput
		check   func(error) bool
		wantErr error
	}{
		{
			name:  "no session",
			input: ChangePasswordInput{CurrentPassword: "old password", NewPassword: "new password"},
			check: apperr.IsUnauthorized,
		},
		{
			name:  "session from another gym",
			input: ChangePasswordInput{Scope: tenant.Scope{UserID: u.ID, GymID: 4}, CurrentPassword: "old password", NewPassword: "new password"},
			check: apperr.IsUnauthorized,
		},
		{
			name:    "wrong current password",
			input:   ChangePasswordInput{Scope: scope, CurrentPassword: "not it", NewPassword: "new password"},
			wantErr: ErrCurrentPasswordWrong,
		},
		{
			name:    "same password",
			input:   ChangePasswordInput{Scope: scope, CurrentPassword: "old password", NewPassword: "old password"},
			wantErr: ErrNewPasswordSame,
		},
		{
			name:  "too short",
			input: ChangePasswordInput{Scope: scope, CurrentPassword: "old password", NewPassword: "short"},
			check: apperr.IsValidation,
		},
		{
			name:  "missing new password",
			input: ChangePasswordInput{Scope: scope, CurrentPassword: "old password"},
			check: apperr.IsValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExecuteChangePassword(ctx, tt.input, deps)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.check != nil {
				assert.True(t, tt.check(err), "unexpected error type: %v", err)
			}
		})
	}

	require.NoError(t, ExecuteChangePassword(ctx, ChangePasswordInput{
		Scope: scope, CurrentPassword: "old password", NewPassword: "new password",
	}, deps))
	stored := store.users[u.ID]
	assert.NoError(t, stored.CheckPassword("new password"))
	assert.Error(t, stored.CheckPassword("old password"))
}

func TestExecuteResetPassword(t *testing.T) {
	store := newMockUserStore()
	u := store.add(t, "recepcion", "old password", 3)
	deps := ChangePasswordDeps{UserStore: store}
	ctx := context.Background()

	require.NoError(t, ExecuteResetPassword(ctx, ResetPasswordInput{Username: "recepcion", NewPassword: "reset password"}, deps))
	stored := store.users[u.ID]
	assert.NoError(t, stored.CheckPassword("reset password"))

	err := ExecuteResetPassword(ctx, ResetPasswordInput{Username: "ghost", NewPassword: "reset password"}, deps)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = ExecuteResetPassword(ctx, ResetPasswordInput{Username: "recepcion", NewPassword: "x"}, deps)
	assert.True(t, apperr.IsValidation(err))
}

func TestExecuteDeleteUser(t *testing.T) {
	store := newMockUserStore()
	store.add(t, "recepcion", "old password", 3)
	deps := DeleteUserDeps{UserStore: store}
	ctx := context.Background()

	require.NoError(t, ExecuteDeleteUser(ctx, "recepcion", deps))
	assert.Empty(t, store.users)
	assert.ErrorIs(t, ExecuteDeleteUser(ctx, "recepcion", deps), ErrUserNotFound)
	assert.True(t, apperr.IsValidation(ExecuteDeleteUser(ctx, "  ", deps)))
}
