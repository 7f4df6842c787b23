package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickstar/taskbot/internal/domain"
)

func TestCatalogAddValidates(t *testing.T) {
	catalog := NewTaskCatalog(newFakeTaskStore())
	ctx := context.Background()

	tests := []struct {
		name string
		task domain.Task
	}{
		{"missing id", domain.Task{Type: domain.TaskVisit, Title: "T", Reward: 3}},
		{"missing title", domain.Task{ID: "t1", Type: domain.TaskVisit, Reward: 3}},
		{"unknown type", domain.Task{ID: "t1", Type: "watch_video", Title: "T", Reward: 3}},
		{"zero reward", domain.Task{ID: "t1", Type: domain.TaskVisit, Title: "T", Reward: 0}},
		{"negative reward", domain.Task{ID: "t1", Type: domain.TaskVisit, Title: "T", Reward: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			assert.ErrorIs(t, catalog.Add(ctx, &task), domain.ErrInvalidTaskPayload)
		})
	}

	ok := domain.Task{ID: "t1", Type: domain.TaskVisit, Title: "Visit", Reward: 3, Target: "https://example.com", Available: true}
	require.NoError(t, catalog.Add(ctx, &ok))

	got, err := catalog.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskVisit, got.Type)
}

func TestCatalogListAvailableFilters(t *testing.T) {
	store := newFakeTaskStore()
	catalog := NewTaskCatalog(store)
	ctx := context.Background()

	seed := []domain.Task{
		{ID: "v1", Type: domain.TaskVisit, Title: "V1", Reward: 3, Available: true},
		{ID: "c1", Type: domain.TaskJoinChannel, Title: "C1", Reward: 8, Available: true},
		{ID: "v2", Type: domain.TaskVisit, Title: "V2", Reward: 3, Available: false},
		{ID: "o1", Type: domain.TaskOther, Title: "O1", Reward: 4, Available: true},
	}
	for i := range seed {
		require.NoError(t, catalog.Add(ctx, &seed[i]))
	}

	all, err := catalog.ListAvailable(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3) // v2 is hidden

	visits, err := catalog.ListAvailable(ctx, domain.TaskVisit)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "v1", visits[0].ID)

	// Toggling availability brings v2 back.
	require.NoError(t, catalog.SetAvailable(ctx, "v2", true))
	visits, err = catalog.ListAvailable(ctx, domain.TaskVisit)
	require.NoError(t, err)
	assert.Len(t, visits, 2)
}

func TestCatalogRemove(t *testing.T) {
	catalog := NewTaskCatalog(newFakeTaskStore())
	ctx := context.Background()

	task := domain.Task{ID: "t1", Type: domain.TaskVisit, Title: "T", Reward: 3, Available: true}
	require.NoError(t, catalog.Add(ctx, &task))

	require.NoError(t, catalog.Remove(ctx, "t1"))
	_, err := catalog.Get(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	assert.ErrorIs(t, catalog.Remove(ctx, "t1"), domain.ErrTaskNotFound)
}

func TestCatalogSeedDefaults(t *testing.T) {
	store := newFakeTaskStore()
	catalog := NewTaskCatalog(store)
	ctx := context.Background()

	require.NoError(t, catalog.SeedDefaults(ctx))
	all, err := catalog.ListAvailable(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// Seeding again is a no-op on a populated catalog.
	require.NoError(t, catalog.Remove(ctx, "task1"))
	require.NoError(t, catalog.SeedDefaults(ctx))
	all, err = catalog.ListAvailable(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
