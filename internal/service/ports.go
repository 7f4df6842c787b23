// Package service holds the bot's domain logic. Services talk to storage
// through the narrow interfaces below, implemented by internal/repository;
// handlers inject the concrete repositories at startup.
package service

import (
	"context"

	"github.com/clickstar/taskbot/internal/domain"
)

type UserStore interface {
	Get(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, telegramID int64, username, firstName string) (bool, error)
	UpdateInfo(ctx context.Context, telegramID int64, username, firstName string) error
	AddPoints(ctx context.Context, telegramID int64, amount int64) (int64, error)
	DebitPoints(ctx context.Context, telegramID int64, amount int64) (int64, error)
	AddReferral(ctx context.Context, telegramID int64, by int64) (int64, error)
	SetReferredBy(ctx context.Context, telegramID, referrerID int64) (bool, error)
	Top(ctx context.Context, limit int) ([]domain.User, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type TaskStore interface {
	Get(ctx context.Context, id string) (*domain.Task, error)
	ListAvailable(ctx context.Context, filter domain.TaskType) ([]domain.Task, error)
	Upsert(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	SetAvailable(ctx context.Context, id string, available bool) error
	Count(ctx context.Context) (int64, error)
}

type CompletionStore interface {
	Has(ctx context.Context, userID int64, taskID string) (bool, error)
	Insert(ctx context.Context, c *domain.Completion) (bool, error)
}

type AdStore interface {
	SaveDraft(ctx context.Context, d *domain.PendingAd) error
	GetDraft(ctx context.Context, userID int64) (*domain.PendingAd, error)
	DeleteDraft(ctx context.Context, userID int64) error
	Publish(ctx context.Context, ad *domain.PublishedAd) error
}

// MembershipVerifier checks whether a user is an active member of a channel.
// Backed by the Telegram GetChatMember call in production.
type MembershipVerifier interface {
	IsMember(ctx context.Context, channel string, userID int64) (bool, error)
}

// Notifier delivers a best-effort message to a chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}
