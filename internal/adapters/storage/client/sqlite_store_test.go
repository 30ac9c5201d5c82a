package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientStore "softgym/internal/adapters/storage/client"
	"softgym/internal/adapters/storage/storagetest"
	"softgym/internal/domain/apperr"
	"softgym/internal/domain/client"
	"softgym/internal/domain/membership"
)

var today = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func newClient(name string, plan membership.Plan, exp time.Time, gymID int64) *client.Client {
	return &client.Client{Name: name, Plan: plan, ExpirationDate: exp, GymID: gymID}
}

func TestSQLiteStore_CreateGetUpdateDelete(t *testing.T) {
	db := storagetest.Open(t)
	gymID := storagetest.SeedGym(t, db, "Iron Temple")
	store := clientStore.NewSQLiteStore(db)
	ctx := context.Background()

	c := newClient("Ana", membership.Weekly, today.AddDate(0, 0, 7), gymID)
	require.NoError(t, store.Create(ctx, c))
	require.NotZero(t, c.ID)

	got, err := store.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, membership.Weekly, got.Plan)
	assert.True(t, got.ExpirationDate.Equal(today.AddDate(0, 0, 7)))
	assert.Equal(t, gymID, got.GymID)

	got.Edit("Ana María", membership.Monthly, today)
	require.NoError(t, store.Update(ctx, got))
	got, err = store.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, membership.Monthly, got.Plan)
	assert.True(t, got.ExpirationDate.Equal(today.AddDate(0, 0, 30)))

	require.NoError(t, store.Delete(ctx, c.ID, gymID))
	_, err = store.GetByID(ctx, c.ID)
	assert.True(t, apperr.IsNotFound(err), "got %v", err)
	assert.True(t, apperr.IsNotFound(store.Delete(ctx, c.ID, gymID)))
}

func TestSQLiteStore_UpdateIsGymScoped(t *testing.T) {
	db := storagetest.Open(t)
	gymA := storagetest.SeedGym(t, db, "A")
	gymB := storagetest.SeedGym(t, db, "B")
	store := clientStore.NewSQLiteStore(db)
	ctx := context.Background()

	c := newClient("Ana", membership.Day, today, gymA)
	require.NoError(t, store.Create(ctx, c))

	moved := *c
	moved.GymID = gymB
	moved.Name = "Hijacked"
	assert.True(t, apperr.IsNotFound(store.Update(ctx, moved)))

	got, err := store.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestSQLiteStore_DeleteIsGymScoped(t *testing.T) {
	db := storagetest.Open(t)
	gymA := storagetest.SeedGym(t, db, "A")
	gymB := storagetest.SeedGym(t, db, "B")
	store := clientStore.NewSQLiteStore(db)
	ctx := context.Background()

	c := newClient("Ana", membership.Day, today, gymA)
	require.NoError(t, store.Create(ctx, c))

	assert.True(t, apperr.IsNotFound(store.Delete(ctx, c.ID, gymB)))
	_, err := store.GetByID(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, c.ID, gymA))
}

func TestSQLiteStore_LegacyPlanLabel(t *testing.T) {
	db := storagetest.Open(t)
	gymID := storagetest.SeedGym(t, db, "Iron Temple")
	_, err := db.Exec("INSERT INTO client (id, name, plan_type, expiration_date, gym_id) VALUES (7, 'Luis', 'Quincenal', '2024-03-20', ?)", gymID)
	require.NoError(t, err)

	got, err := clientStore.NewSQLiteStore(db).GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, membership.Biweekly, got.Plan)
}

func TestSQLiteStore_ListAndCount(t *testing.T) {
	db := storagetest.Open(t)
	gymA := storagetest.SeedGym(t, db, "A")
	gymB := storagetest.SeedGym(t, db, "B")
	store := clientStore.NewSQLiteStore(db)
	ctx := context.Background()

	seed := []*client.Client{
		newClient("Carla", membership.Monthly, today.AddDate(0, 0, 20), gymA),
		newClient("anibal", membership.Day, today.AddDate(0, 0, -2), gymA),
		newClient("Beto", membership.Weekly, today, gymA),
		newClient("Dana", membership.Day, time.Time{}, gymA),
		newClient("Other gym", membership.Monthly, today.AddDate(0, 0, 5), gymB),
	}
	for _, c := range seed {
		require.NoError(t, store.Create(ctx, c))
	}

	names := func(cs []client.Client) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.Name)
		}
		return out
	}

	tests := []struct {
		name      string
		filter    clientStore.ListFilter
		want      []string
		wantCount int
	}{
		{
			name:      "all of gym A by name",
			filter:    clientStore.ListFilter{GymID: gymA, Today: today},
			want:      []string{"anibal", "Beto", "Carla", "Dana"},
			wantCount: 4,
		},
		{
			name:      "active only",
			filter:    clientStore.ListFilter{GymID: gymA, Today: today, Status: clientStore.FilterActive},
			want:      []string{"Beto", "Carla"},
			wantCount: 2,
		},
		{
			name:      "expired includes never paid",
			filter:    clientStore.ListFilter{GymID: gymA, Today: today, Status: clientStore.FilterExpired},
			want:      []string{"anibal", "Dana"},
			wantCount: 2,
		},
		{
			name:      "search by name",
			filter:    clientStore.ListFilter{GymID: gymA, Today: today, Search: "AR"},
			want:      []string{"Carla"},
			wantCount: 1,
		},
		{
			name:      "search by id",
			filter:    clientStore.ListFilter{GymID: gymA, Today: today, Search: "3"},
			want:      []string{"Beto"},
			wantCount: 1,
		},
		{
			name:      "search never crosses gyms",
			filter:    clientStore.ListFilter{GymID: gymA, Today: today, Search: "5"},
			want:      []string{},
			wantCount: 0,
		},
		{
			name:      "sort by expiration desc, unknown last",
			filter:    clientStore.ListFilter{GymID: gymA, Today: today, Sort: clientStore.SortExpiration, Desc: true},
			want:      []string{"Carla", "Beto", "anibal", "Dana"},
			wantCount: 4,
		},
		{
			name:      "paged",
			filter:    clientStore.ListFilter{GymID: gymA, Today: today, Limit: 2, Offset: 2},
			want:      []string{"Carla", "Dana"},
			wantCount: 4,
		},
		{
			name:      "no gym matches nothing",
			filter:    clientStore.ListFilter{Today: today},
			want:      []string{},
			wantCount: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))

			n, err := store.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestSQLiteStore_SearchMatchesWildcardsLiterally(t *testing.T) {
	db := storagetest.Open(t)
	gymID := storagetest.SeedGym(t, db, "A")
	store := clientStore.NewSQLiteStore(db)
	ctx := context.Background()

	for _, name := range []string{"50% Promo", "Ana_Maria", "AnaXMaria", `Back\slash`, "Carla"} {
		require.NoError(t, store.Create(ctx, newClient(name, membership.Day, today, gymID)))
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"%", []string{"50% Promo"}},
		{"50%", []string{"50% Promo"}},
		{"_", []string{"Ana_Maria"}},
		{"Ana_M", []string{"Ana_Maria"}},
		{`\`, []string{`Back\slash`}},
		{"%%%", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			filter := clientStore.ListFilter{GymID: gymID, Today: today, Search: tt.search}
			got, err := store.List(ctx, filter)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)

			n, err := store.Count(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), n)
		})
	}
}
