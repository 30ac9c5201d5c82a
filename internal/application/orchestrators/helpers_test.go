package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"softgym/internal/adapters/storage/storagetest"
	"softgym/internal/adapters/storage/txn"
	userStorePkg "softgym/internal/adapters/storage/user"
	"softgym/internal/domain/apperr"
	"softgym/internal/domain/tenant"
	"softgym/internal/domain/user"
)

// mockUserStore implements the user store interfaces for testing.
type mockUserStore struct {
	users  map[int64]user.User
	nextID int64
	err    error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[int64]user.User), nextID: 1}
}

// add stores a user with a real bcrypt hash of password.
func (m *mockUserStore) add(t *testing.T, username, password string, gymID int64) user.User {
	t.Helper()
	u := user.User{Username: username, GymID: gymID}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := m.Create(context.Background(), &u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return u
}

func (m *mockUserStore) Create(_ context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return userStorePkg.ErrDuplicateUsername
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = *u
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id int64) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, apperr.NotFound("user", id)
	}
	return u, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, apperr.NotFound("user", username)
}

func (m *mockUserStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return apperr.NotFound("user", id)
	}
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperr.NotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

var errStore = errors.New("disk on fire")

// testNow is 15:30 on 2024-03-10 in the gym's time zone.
var testNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// testDate returns the civil date offset by days from testNow.
func testDate(days int) time.Time {
	return time.Date(2024, 3, 10+days, 0, 0, 0, 0, time.UTC)
}

// sqliteEnv is a migrated database with two gyms, for orchestrators that need transactions.
type sqliteEnv struct {
	db     *sql.DB
	tx     *txn.SQLTransactor
	stores txn.Stores
	gymA   tenant.Scope
	gymB   tenant.Scope
}

func newSQLiteEnv(t *testing.T) sqliteEnv {
	t.Helper()
	db := storagetest.Open(t)
	a := storagetest.SeedGym(t, db, "Gym A")
	b := storagetest.SeedGym(t, db, "Gym B")
	return sqliteEnv{
		db:     db,
		tx:     txn.New(db),
		stores: txn.Bind(db),
		gymA:   tenant.Scope{UserID: 1, GymID: a},
		gymB:   tenant.Scope{UserID: 2, GymID: b},
	}
}

func (e sqliteEnv) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := e.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
