package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clickstar/taskbot/internal/config"
	"github.com/clickstar/taskbot/internal/domain"
)

// TaskCatalog manages the task descriptors users can complete for points.
type TaskCatalog struct {
	tasks TaskStore
}

func NewTaskCatalog(tasks TaskStore) *TaskCatalog {
	return &TaskCatalog{tasks: tasks}
}

func (s *TaskCatalog) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.Get(ctx, id)
}

func (s *TaskCatalog) ListAvailable(ctx context.Context, filter domain.TaskType) ([]domain.Task, error) {
	return s.tasks.ListAvailable(ctx, filter)
}

// Add validates and stores a task descriptor.
func (s *TaskCatalog) Add(ctx context.Context, t *domain.Task) error {
	t.ID = strings.TrimSpace(t.ID)
	t.Title = strings.TrimSpace(t.Title)
	if t.ID == "" || t.Title == "" {
		return fmt.Errorf("%w: id and title are required", domain.ErrInvalidTaskPayload)
	}
	if _, err := domain.ParseTaskType(string(t.Type)); err != nil {
		return err
	}
	if t.Reward <= 0 {
		return fmt.Errorf("%w: reward must be a positive integer", domain.ErrInvalidTaskPayload)
	}
	if err := s.tasks.Upsert(ctx, t); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	return nil
}

func (s *TaskCatalog) Remove(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *TaskCatalog) SetAvailable(ctx context.Context, id string, available bool) error {
	return s.tasks.SetAvailable(ctx, id, available)
}

// SeedDefaults populates the catalog with sample tasks when it is empty.
func (s *TaskCatalog) SeedDefaults(ctx context.Context) error {
	count, err := s.tasks.Count(ctx)
	if err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if count > 0 {
		return nil
	}

	samples := []domain.Task{
		{
			ID:          "task1",
			Type:        domain.TaskVisit,
			Title:       "Visit Example Site",
			Description: "Open the link and view the page for a few seconds.",
			Reward:      config.RewardVisit,
			Target:      "https://example.com",
			Available:   true,
		},
		{
			ID:          "task2",
			Type:        domain.TaskJoinChannel,
			Title:       "Join @SomePublicChannel",
			Description: "Join the channel listed and press 'I joined'.",
			Reward:      config.RewardJoinChannel,
			Target:      "@SomePublicChannel",
			Available:   true,
		},
		{
			ID:          "task3",
			Type:        domain.TaskJoinBot,
			Title:       "Start @SomeOtherBot",
			Description: "Open the bot and press Start, then press 'Done'.",
			Reward:      config.RewardJoinBot,
			Target:      "@SomeOtherBot",
			Available:   true,
		},
		{
			ID:          "task4",
			Type:        domain.TaskOther,
			Title:       "Twitter: Like a Post",
			Description: "Open the tweet and like it. Press 'Done'.",
			Reward:      config.RewardOther,
			Target:      "https://twitter.com/example/status/000",
			Available:   true,
		},
	}

	for i := range samples {
		if err := s.tasks.Upsert(ctx, &samples[i]); err != nil {
			return fmt.Errorf("seed task %s: %w", samples[i].ID, err)
		}
	}
	slog.Info("seeded sample tasks", "count", len(samples))
	return nil
}
