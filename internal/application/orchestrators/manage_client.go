package orchestrators

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"softgym/internal/domain/client"
	"softgym/internal/domain/membership"
	"softgym/internal/domain/tenant"
)

// ClientStore defines the client persistence needed by edit and delete.
type ClientStore interface {
	GetByID(ctx context.Context, id int64) (client.Client, error)
	Update(ctx context.Context, c client.Client) error
	Delete(ctx context.Context, id, gymID int64) error
}

// ManageClientDeps holds dependencies for EditClient and DeleteClient.
type ManageClientDeps struct {
	ClientStore ClientStore
	Clock       Clock
}

// EditClientInput carries input for EditClient.
type EditClientInput struct {
	Scope    tenant.Scope
	ClientID int64  `form:"id" validate:"gt=0"`
	Name     string `form:"name" validate:"required,max=100"`
	Plan     string `form:"plan" validate:"required"`
}

// ExecuteEditClient replaces a client's name and plan. An explicit edit
// restarts the membership: the expiration becomes today + plan days.
// PRE: Scope is authenticated
// POST: the client in Scope's gym is updated; foreign clients yield an AuthorizationError
func ExecuteEditClient(ctx context.Context, input EditClientInput, deps ManageClientDeps) (client.Client, error) {
	if err := input.Scope.Require(); err != nil {
		return client.Client{}, err
	}
	c, err := loadOwnedClient(ctx, input.Scope, input.ClientID, deps.ClientStore)
	if err != nil {
		return client.Client{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return client.Client{}, err
	}
	plan, err := membership.ParsePlan(input.Plan)
	if err != nil {
		return client.Client{}, err
	}

	c.Edit(input.Name, plan, deps.Clock.Today())
	if err := c.Validate(); err != nil {
		return client.Client{}, err
	}
	if err := deps.ClientStore.Update(ctx, c); err != nil {
		return client.Client{}, err
	}

	zap.L().Info("client_event",
		zap.String("event", "client_edited"),
		zap.Int64("gym_id", c.GymID),
		zap.Int64("client_id", c.ID),
		zap.String("plan", plan.String()),
	)
	return c, nil
}

// ExecuteDeleteClient removes a client of the session gym along with its payments.
// Access log rows keep the client's name snapshot.
// PRE: Scope is authenticated
// POST: the client no longer exists; foreign clients yield an AuthorizationError
func ExecuteDeleteClient(ctx context.Context, scope tenant.Scope, clientID int64, deps ManageClientDeps) error {
	if err := scope.Require(); err != nil {
		return err
	}
	c, err := loadOwnedClient(ctx, scope, clientID, deps.ClientStore)
	if err != nil {
		return err
	}
	if err := deps.ClientStore.Delete(ctx, c.ID, scope.GymID); err != nil {
		return err
	}

	zap.L().Info("client_event",
		zap.String("event", "client_deleted"),
		zap.Int64("gym_id", c.GymID),
		zap.Int64("client_id", c.ID),
	)
	return nil
}

// ClientReader is satisfied by any store that can load a client by ID.
type ClientReader interface {
	GetByID(ctx context.Context, id int64) (client.Client, error)
}

// loadOwnedClient fetches a client and checks it belongs to scope's gym.
// Clients of other gyms are reported as unauthorized, never as their contents.
func loadOwnedClient(ctx context.Context, scope tenant.Scope, id int64, store ClientReader) (client.Client, error) {
	c, err := store.GetByID(ctx, id)
	if err != nil {
		return client.Client{}, err
	}
	if err := scope.RequireOwner("client", c.ID, c.GymID); err != nil {
		zap.L().Warn("auth_event",
			zap.String("event", "cross_gym_denied"),
			zap.Int64("user_id", scope.UserID),
			zap.Int64("gym_id", scope.GymID),
			zap.Int64("client_id", id),
		)
		return client.Client{}, err
	}
	return c, nil
}
