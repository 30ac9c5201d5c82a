package projections

import (
	"context"

	"softgym/internal/adapters/storage/user"
)

// UserRow is one login with the name of its gym.
type UserRow struct {
	ID       int64
	Username string
	GymID    int64
	GymName  string
}

// GetUserListResult carries the query result.
type GetUserListResult struct {
	Users []UserRow // ordered by username
}

// GetUserListDeps holds dependencies for GetUserList.
type GetUserListDeps struct {
	UserStore UserStore
	GymStore  GymStore
}

// QueryGetUserList lists every user across gyms for the admin console.
// PRE: caller is the operator of the installation
// POST: password hashes are never part of the result
func QueryGetUserList(ctx context.Context, deps GetUserListDeps) (GetUserListResult, error) {
	users, err := deps.UserStore.List(ctx, user.ListFilter{})
	if err != nil {
		return GetUserListResult{}, err
	}
	gyms, err := deps.GymStore.List(ctx)
	if err != nil {
		return GetUserListResult{}, err
	}
	names := make(map[int64]string, len(gyms))
	for _, g := range gyms {
		names[g.ID] = g.Name
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{ID: u.ID, Username: u.Username, GymID: u.GymID, GymName: names[u.GymID]})
	}
	return GetUserListResult{Users: rows}, nil
}
