package service

import (
	"context"
	"fmt"
)

// Ledger owns point-balance and referral-count mutations. All writes go
// through the store's atomic updates, never read-modify-write in process.
type Ledger struct {
	users UserStore
}

func NewLedger(users UserStore) *Ledger {
	return &Ledger{users: users}
}

// Credit adds points and returns the new balance.
func (l *Ledger) Credit(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	balance, err := l.users.AddPoints(ctx, telegramID, amount)
	if err != nil {
		return 0, fmt.Errorf("credit %d to %d: %w", amount, telegramID, err)
	}
	return balance, nil
}

// Debit deducts points, failing with domain.ErrInsufficientBalance when the
// balance does not cover the amount. The check and the write are atomic in
// the store.
func (l *Ledger) Debit(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	return l.users.DebitPoints(ctx, telegramID, amount)
}

// AddReferral increments the referral counter and returns the new count.
func (l *Ledger) AddReferral(ctx context.Context, telegramID int64) (int64, error) {
	count, err := l.users.AddReferral(ctx, telegramID, 1)
	if err != nil {
		return 0, fmt.Errorf("increment referrals for %d: %w", telegramID, err)
	}
	return count, nil
}
