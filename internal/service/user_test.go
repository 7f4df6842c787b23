package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreate(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users)
	ctx := context.Background()

	u, created, err := svc.FindOrCreate(ctx, 1, "alice", "Alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Zero(t, u.Points)
	assert.Nil(t, u.ReferredBy)

	// Second contact refreshes the display fields only.
	u, created, err = svc.FindOrCreate(ctx, 1, "alice_new", "Alice")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "alice_new", u.Username)
}

func TestLeaderboardOrdering(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users)
	ctx := context.Background()

	seed := []struct {
		id        int64
		referrals int64
		points    int64
	}{
		{1, 2, 5},
		{2, 2, 50}, // same referrals, more points: ranks above 1
		{3, 7, 0},  // most referrals wins regardless of points
		{4, 0, 999},
	}
	for _, s := range seed {
		_, err := users.Create(ctx, s.id, "", "")
		require.NoError(t, err)
		if s.points > 0 {
			_, err = users.AddPoints(ctx, s.id, s.points)
			require.NoError(t, err)
		}
		if s.referrals > 0 {
			_, err = users.AddReferral(ctx, s.id, s.referrals)
			require.NoError(t, err)
		}
	}

	top, err := svc.Leaderboard(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, int64(3), top[0].TelegramID)
	assert.Equal(t, int64(2), top[1].TelegramID)
	assert.Equal(t, int64(1), top[2].TelegramID)
}

func TestEnsureDoesNotClobberExisting(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users)
	ctx := context.Background()

	_, _, err := svc.FindOrCreate(ctx, 1, "alice", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.Ensure(ctx, 1))
	u, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	require.NoError(t, svc.Ensure(ctx, 2))
	_, err = svc.Get(ctx, 2)
	assert.NoError(t, err)
}
