package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/clickstar/taskbot/internal/domain"
)

// ReferralService records the referrer for a user exactly once and pays the
// referral bonus.
type ReferralService struct {
	users    UserStore
	ledger   *Ledger
	notifier Notifier
	bonus    int64
}

func NewReferralService(users UserStore, ledger *Ledger, notifier Notifier, bonus int64) *ReferralService {
	return &ReferralService{
		users:    users,
		ledger:   ledger,
		notifier: notifier,
		bonus:    bonus,
	}
}

// Attach links user to the referrer named in the /start payload. It is a
// no-op (not an error) when the payload is not a valid id, names the user
// themselves, names an unknown referrer, or the user already has a referrer.
// Returns whether the referral was credited.
func (s *ReferralService) Attach(ctx context.Context, user *domain.User, payload string) (bool, error) {
	referrerID, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil || referrerID == user.TelegramID {
		return false, nil
	}

	referrer, err := s.users.Get(ctx, referrerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load referrer: %w", err)
	}

	// Conditional write: only the first attach for this user lands.
	set, err := s.users.SetReferredBy(ctx, user.TelegramID, referrerID)
	if err != nil {
		return false, fmt.Errorf("set referrer: %w", err)
	}
	if !set {
		return false, nil
	}

	if _, err := s.ledger.Credit(ctx, referrerID, s.bonus); err != nil {
		return false, fmt.Errorf("credit referral bonus: %w", err)
	}
	if _, err := s.ledger.AddReferral(ctx, referrerID); err != nil {
		return false, fmt.Errorf("bump referral count: %w", err)
	}

	// Best effort: the referrer may have blocked the bot.
	name := user.Username
	if name == "" {
		name = user.FirstName
	}
	text := fmt.Sprintf("🎉 You got <b>%d</b> points! @%s joined with your link.", s.bonus, name)
	if err := s.notifier.Notify(ctx, referrer.TelegramID, text); err != nil {
		slog.Info("could not notify referrer", "referrer_id", referrerID, "error", err)
	}

	return true, nil
}
