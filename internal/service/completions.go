package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clickstar/taskbot/internal/domain"
)

// CompletionService gates one-time reward issuance for task claims.
type CompletionService struct {
	completions CompletionStore
	tasks       TaskStore
	ledger      *Ledger
	verifier    MembershipVerifier
}

func NewCompletionService(completions CompletionStore, tasks TaskStore, ledger *Ledger, verifier MembershipVerifier) *CompletionService {
	return &CompletionService{
		completions: completions,
		tasks:       tasks,
		ledger:      ledger,
		verifier:    verifier,
	}
}

// ClaimResult reports the outcome of a successful claim.
type ClaimResult struct {
	Task       *domain.Task
	Reward     int64
	NewBalance int64
	Verified   bool
}

// Claim records a task completion and credits the reward exactly once per
// (user, task) pair. A repeated claim fails with domain.ErrTaskAlreadyDone.
//
// Verification policy: join_channel tasks get a live membership lookup;
// if the lookup fails (private channel, bot lacks access) the self-report is
// accepted with verified=false and the reward is still granted. All other
// types cannot be checked and are always accepted unverified.
func (s *CompletionService) Claim(ctx context.Context, userID int64, taskID string) (*ClaimResult, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	done, err := s.completions.Has(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("check completion: %w", err)
	}
	if done {
		return nil, domain.ErrTaskAlreadyDone
	}

	verified := false
	if task.Type == domain.TaskJoinChannel {
		if handle := task.ChannelHandle(); handle != "" {
			ok, err := s.verifier.IsMember(ctx, handle, userID)
			if err != nil {
				slog.Info("membership check failed, accepting self-report",
					"task_id", taskID, "channel", handle, "error", err)
			} else {
				verified = ok
			}
		}
	}

	inserted, err := s.completions.Insert(ctx, &domain.Completion{
		UserID:   userID,
		TaskID:   taskID,
		Reward:   task.Reward,
		Verified: verified,
	})
	if err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	if !inserted {
		// Lost a race against another claim of the same task.
		return nil, domain.ErrTaskAlreadyDone
	}

	balance, err := s.ledger.Credit(ctx, userID, task.Reward)
	if err != nil {
		return nil, fmt.Errorf("credit reward: %w", err)
	}

	return &ClaimResult{
		Task:       task,
		Reward:     task.Reward,
		NewBalance: balance,
		Verified:   verified,
	}, nil
}
