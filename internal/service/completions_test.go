package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickstar/taskbot/internal/domain"
)

type claimFixture struct {
	svc      *CompletionService
	users    *fakeUserStore
	tasks    *fakeTaskStore
	verifier *fakeVerifier
}

func newClaimFixture(t *testing.T, task *domain.Task) *claimFixture {
	t.Helper()
	ctx := context.Background()

	users := newFakeUserStore()
	_, err := users.Create(ctx, 1, "alice", "Alice")
	require.NoError(t, err)

	tasks := newFakeTaskStore()
	require.NoError(t, tasks.Upsert(ctx, task))

	verifier := &fakeVerifier{}
	return &claimFixture{
		svc:      NewCompletionService(newFakeCompletionStore(), tasks, NewLedger(users), verifier),
		users:    users,
		tasks:    tasks,
		verifier: verifier,
	}
}

func TestClaimGrantsRewardOnce(t *testing.T) {
	fix := newClaimFixture(t, &domain.Task{
		ID: "t1", Type: domain.TaskVisit, Title: "Visit", Reward: 3, Target: "https://example.com", Available: true,
	})
	ctx := context.Background()

	result, err := fix.svc.Claim(ctx, 1, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Reward)
	assert.Equal(t, int64(3), result.NewBalance)
	assert.False(t, result.Verified)

	// Second claim is rejected and the balance does not move.
	_, err = fix.svc.Claim(ctx, 1, "t1")
	assert.ErrorIs(t, err, domain.ErrTaskAlreadyDone)

	u, err := fix.users.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.Points)
}

func TestClaimUnknownTask(t *testing.T) {
	fix := newClaimFixture(t, &domain.Task{
		ID: "t1", Type: domain.TaskVisit, Title: "Visit", Reward: 3, Available: true,
	})

	_, err := fix.svc.Claim(context.Background(), 1, "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestClaimJoinChannelVerified(t *testing.T) {
	fix := newClaimFixture(t, &domain.Task{
		ID: "t2", Type: domain.TaskJoinChannel, Title: "Join", Reward: 8, Target: "@SomeChannel", Available: true,
	})
	fix.verifier.member = true

	result, err := fix.svc.Claim(context.Background(), 1, "t2")
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, 1, fix.verifier.calls)
	assert.Equal(t, int64(8), result.NewBalance)
}

func TestClaimJoinChannelNotMemberStillGrants(t *testing.T) {
	fix := newClaimFixture(t, &domain.Task{
		ID: "t2", Type: domain.TaskJoinChannel, Title: "Join", Reward: 8, Target: "@SomeChannel", Available: true,
	})
	fix.verifier.member = false

	result, err := fix.svc.Claim(context.Background(), 1, "t2")
	require.NoError(t, err)
	assert.False(t, result.Verified)
	assert.Equal(t, int64(8), result.NewBalance)
}

func TestClaimJoinChannelLookupFailureDegrades(t *testing.T) {
	fix := newClaimFixture(t, &domain.Task{
		ID: "t2", Type: domain.TaskJoinChannel, Title: "Join", Reward: 8, Target: "@PrivateChannel", Available: true,
	})
	fix.verifier.err = errors.New("bot is not a member of the channel")

	// Verification failure degrades to an unverified self-report.
	result, err := fix.svc.Claim(context.Background(), 1, "t2")
	require.NoError(t, err)
	assert.False(t, result.Verified)
	assert.Equal(t, int64(8), result.NewBalance)
}

func TestClaimJoinChannelInviteLinkSkipsLookup(t *testing.T) {
	fix := newClaimFixture(t, &domain.Task{
		ID: "t2", Type: domain.TaskJoinChannel, Title: "Join", Reward: 8, Target: "https://t.me/+abcdef", Available: true,
	})

	result, err := fix.svc.Claim(context.Background(), 1, "t2")
	require.NoError(t, err)
	assert.False(t, result.Verified)
	assert.Zero(t, fix.verifier.calls)
}

func TestClaimNonChannelTypesNeverVerify(t *testing.T) {
	for _, taskType := range []domain.TaskType{domain.TaskVisit, domain.TaskJoinBot, domain.TaskOther} {
		t.Run(string(taskType), func(t *testing.T) {
			fix := newClaimFixture(t, &domain.Task{
				ID: "t1", Type: taskType, Title: "T", Reward: 4, Target: "@whatever", Available: true,
			})

			result, err := fix.svc.Claim(context.Background(), 1, "t1")
			require.NoError(t, err)
			assert.False(t, result.Verified)
			assert.Zero(t, fix.verifier.calls)
		})
	}
}
