package orchestrators

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	userStorePkg "softgym/internal/adapters/storage/user"
	"softgym/internal/adapters/storage/txn"
	"softgym/internal/domain/apperr"
	"softgym/internal/domain/gym"
	"softgym/internal/domain/user"
)

// UserStoreForCreate defines the store interface needed by CreateUser.
type UserStoreForCreate interface {
	Create(ctx context.Context, u *user.User) error
}

// GymStoreForCreateUser defines the store interface needed by CreateUser.
type GymStoreForCreateUser interface {
	GetByID(ctx context.Context, id int64) (gym.Gym, error)
}

// CreateUserInput carries input for CreateUser.
type CreateUserInput struct {
	GymID    int64  `form:"gym" validate:"gt=0"`
	Username string `form:"username" validate:"required,max=80"`
	Password string `form:"password" validate:"required"`
}

// CreateUserDeps holds dependencies for CreateUser.
type CreateUserDeps struct {
	GymStore  GymStoreForCreateUser
	UserStore UserStoreForCreate
}

// ExecuteCreateUser adds a login to an existing gym.
// PRE: the gym exists
// POST: a user with a bcrypt hash is persisted; duplicate usernames are a ValidationError
func ExecuteCreateUser(ctx context.Context, input CreateUserInput, deps CreateUserDeps) (user.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(input); err != nil {
		return user.User{}, err
	}
	if _, err := deps.GymStore.GetByID(ctx, input.GymID); err != nil {
		return user.User{}, err
	}

	u, err := newUser(input.Username, input.Password, input.GymID)
	if err != nil {
		return user.User{}, err
	}
	if err := deps.UserStore.Create(ctx, &u); err != nil {
		return user.User{}, translateUserErr(err)
	}

	zap.L().Info("auth_event",
		zap.String("event", "user_created"),
		zap.String("username", u.Username),
		zap.Int64("gym_id", u.GymID),
	)
	return u, nil
}

// CreateGymWithUserInput carries input for CreateGymWithUser.
type CreateGymWithUserInput struct {
	GymName  string `form:"gym_name" validate:"required,max=100"`
	Location string `form:"location" validate:"max=100"`
	Username string `form:"username" validate:"required,max=80"`
	Password string `form:"password" validate:"required"`
}

// CreateGymWithUserDeps holds dependencies for CreateGymWithUser.
type CreateGymWithUserDeps struct {
	Tx txn.Transactor
}

// CreateGymWithUserResult carries both created records.
type CreateGymWithUserResult struct {
	Gym  gym.Gym
	User user.User
}

// ExecuteCreateGymWithUser creates a gym and its first login atomically.
// PRE: none
// POST: both rows exist, or neither does when any step fails
func ExecuteCreateGymWithUser(ctx context.Context, input CreateGymWithUserInput, deps CreateGymWithUserDeps) (CreateGymWithUserResult, error) {
	input.GymName = strings.TrimSpace(input.GymName)
	input.Location = strings.TrimSpace(input.Location)
	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(input); err != nil {
		return CreateGymWithUserResult{}, err
	}

	g := gym.Gym{Name: input.GymName, Location: input.Location}
	if err := g.Validate(); err != nil {
		return CreateGymWithUserResult{}, err
	}
	// Hash before opening the transaction so the write lock is held briefly.
	u := user.User{Username: input.Username}
	if err := u.SetPassword(input.Password); err != nil {
		return CreateGymWithUserResult{}, err
	}

	err := deps.Tx.WithinTx(ctx, func(ctx context.Context, s txn.Stores) error {
		if err := s.Gyms.Create(ctx, &g); err != nil {
			return err
		}
		u.GymID = g.ID
		if err := u.Validate(); err != nil {
			return err
		}
		return translateUserErr(s.Users.Create(ctx, &u))
	})
	if err != nil {
		return CreateGymWithUserResult{}, err
	}

	zap.L().Info("auth_event",
		zap.String("event", "gym_created"),
		zap.Int64("gym_id", g.ID),
		zap.String("username", u.Username),
	)
	return CreateGymWithUserResult{Gym: g, User: u}, nil
}

func newUser(username, password string, gymID int64) (user.User, error) {
	u := user.User{Username: username, GymID: gymID}
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}
	if err := u.SetPassword(password); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func translateUserErr(err error) error {
	if errors.Is(err, userStorePkg.ErrDuplicateUsername) {
		return apperr.Validation("username", "already exists")
	}
	return err
}
