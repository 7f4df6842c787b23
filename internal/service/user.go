package service

import (
	"context"
	"fmt"

	"github.com/clickstar/taskbot/internal/domain"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// FindOrCreate lazily creates a user on first interaction and refreshes the
// display fields on later ones. Returns whether the user was just created.
func (s *UserService) FindOrCreate(ctx context.Context, telegramID int64, username, firstName string) (*domain.User, bool, error) {
	created, err := s.users.Create(ctx, telegramID, username, firstName)
	if err != nil {
		return nil, false, fmt.Errorf("find or create user: %w", err)
	}
	if !created {
		if err := s.users.UpdateInfo(ctx, telegramID, username, firstName); err != nil {
			return nil, false, fmt.Errorf("refresh user info: %w", err)
		}
	}
	user, err := s.users.Get(ctx, telegramID)
	if err != nil {
		return nil, false, fmt.Errorf("load user: %w", err)
	}
	return user, created, nil
}

func (s *UserService) Get(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.users.Get(ctx, telegramID)
}

// Ensure creates a bare user row if none exists, without touching the
// display fields of an existing one. Used when admins credit users that have
// never talked to the bot.
func (s *UserService) Ensure(ctx context.Context, telegramID int64) error {
	if _, err := s.users.Create(ctx, telegramID, "", ""); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// Leaderboard returns the top referrers: referral count desc, points desc.
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]domain.User, error) {
	return s.users.Top(ctx, limit)
}

func (s *UserService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.users.Stats(ctx)
}
