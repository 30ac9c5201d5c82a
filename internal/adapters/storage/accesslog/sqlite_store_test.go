package accesslog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accessLogStore "softgym/internal/adapters/storage/accesslog"
	clientStore "softgym/internal/adapters/storage/client"
	"softgym/internal/adapters/storage/storagetest"
	"softgym/internal/domain/accesslog"
	"softgym/internal/domain/client"
	"softgym/internal/domain/membership"
)

func TestSQLiteStore_AppendAndListByDate(t *testing.T) {
	db := storagetest.Open(t)
	gymA := storagetest.SeedGym(t, db, "A")
	gymB := storagetest.SeedGym(t, db, "B")
	ctx := context.Background()

	ana := &client.Client{Name: "Ana", Plan: membership.Day, GymID: gymA}
	require.NoError(t, clientStore.NewSQLiteStore(db).Create(ctx, ana))

	store := accessLogStore.NewSQLiteStore(db)
	today := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []*accesslog.Entry{
		{ClientID: ana.ID, GymID: gymA, ClientName: "Ana", Status: accesslog.StatusAccepted, Date: today, Time: "07:00:00"},
		{GymID: gymA, ClientName: "ID abc", Status: accesslog.StatusInvalid, Reason: accesslog.ReasonInvalidID, Date: today, Time: "09:30:00"},
		{GymID: gymA, ClientName: "ID 404", Status: accesslog.StatusRejected, Reason: accesslog.ReasonNotRegistered, Date: today.AddDate(0, 0, -1), Time: "10:00:00"},
		{GymID: gymB, ClientName: "ID 1", Status: accesslog.StatusRejected, Reason: accesslog.ReasonNotRegistered, Date: today, Time: "08:00:00"},
	}
	for _, e := range entries {
		require.NoError(t, store.Append(ctx, e))
		require.NotZero(t, e.ID)
	}

	got, err := store.ListByDate(ctx, gymA, today)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, accesslog.StatusInvalid, got[0].Status)
	assert.False(t, got[0].HasClient())
	assert.Equal(t, "09:30:00", got[0].Time)
	assert.Equal(t, ana.ID, got[1].ClientID)
	assert.True(t, got[1].Accepted())

	t.Run("snapshot survives client deletion", func(t *testing.T) {
		require.NoError(t, clientStore.NewSQLiteStore(db).Delete(ctx, ana.ID, gymA))
		got, err := store.ListByDate(ctx, gymA, today)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Ana", got[1].ClientName)
		assert.False(t, got[1].HasClient())
	})
}
