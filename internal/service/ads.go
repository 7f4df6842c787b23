package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/clickstar/taskbot/internal/domain"
)

// AdService runs the two-step ad purchase flow: collect the ad text, quote a
// cost, then publish on confirmation. The per-user draft and its state are
// persisted so the flow survives restarts.
type AdService struct {
	ads     AdStore
	ledger  *Ledger
	minCost int64
	maxCost int64
}

func NewAdService(ads AdStore, ledger *Ledger, minCost, maxCost int64) *AdService {
	return &AdService{
		ads:     ads,
		ledger:  ledger,
		minCost: minCost,
		maxCost: maxCost,
	}
}

// Cost prices an ad: one point per character, clamped to the configured range.
func (s *AdService) Cost(text string) int64 {
	cost := int64(utf8.RuneCountInString(text))
	if cost < s.minCost {
		return s.minCost
	}
	if cost > s.maxCost {
		return s.maxCost
	}
	return cost
}

// Begin starts (or restarts) the flow, overwriting any previous draft.
func (s *AdService) Begin(ctx context.Context, userID int64) error {
	return s.ads.SaveDraft(ctx, &domain.PendingAd{
		UserID: userID,
		State:  domain.AdAwaitingText,
	})
}

// Draft returns the user's current draft, or domain.ErrNoPendingAd.
func (s *AdService) Draft(ctx context.Context, userID int64) (*domain.PendingAd, error) {
	return s.ads.GetDraft(ctx, userID)
}

// SubmitText stores the proposed ad text and its quoted cost, moving the
// draft to the confirmation step. Empty text is rejected and the draft stays
// where it was.
func (s *AdService) SubmitText(ctx context.Context, userID int64, text string) (*domain.PendingAd, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyAdText
	}

	draft := &domain.PendingAd{
		UserID: userID,
		State:  domain.AdAwaitingConfirm,
		Text:   text,
		Cost:   s.Cost(text),
	}
	if err := s.ads.SaveDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("save ad draft: %w", err)
	}
	return draft, nil
}

// Confirm charges the quoted cost and publishes the ad. When the balance
// does not cover the cost the draft is discarded and nothing is charged;
// the caller gets domain.ErrInsufficientBalance.
func (s *AdService) Confirm(ctx context.Context, userID int64) (*domain.PublishedAd, int64, error) {
	draft, err := s.ads.GetDraft(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if draft.State != domain.AdAwaitingConfirm {
		return nil, 0, domain.ErrNoPendingAd
	}

	balance, err := s.ledger.Debit(ctx, userID, draft.Cost)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			if delErr := s.ads.DeleteDraft(ctx, userID); delErr != nil {
				return nil, balance, fmt.Errorf("discard ad draft: %w", delErr)
			}
			return nil, balance, err
		}
		return nil, 0, fmt.Errorf("charge ad cost: %w", err)
	}

	now := time.Now()
	ad := &domain.PublishedAd{
		ID:          domain.PublishedAdID(now, userID),
		OwnerID:     userID,
		Text:        draft.Text,
		Cost:        draft.Cost,
		PublishedAt: now,
	}
	if err := s.ads.Publish(ctx, ad); err != nil {
		return nil, 0, fmt.Errorf("publish ad: %w", err)
	}
	if err := s.ads.DeleteDraft(ctx, userID); err != nil {
		return nil, 0, fmt.Errorf("clear ad draft: %w", err)
	}
	return ad, balance, nil
}

// Cancel discards the draft, charging nothing. Safe to call with no draft.
func (s *AdService) Cancel(ctx context.Context, userID int64) error {
	return s.ads.DeleteDraft(ctx, userID)
}
