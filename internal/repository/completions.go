package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clickstar/taskbot/internal/domain"
)

type CompletionRepo struct {
	db *pgxpool.Pool
}

func NewCompletionRepo(db *pgxpool.Pool) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Has(ctx context.Context, userID int64, taskID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM completions WHERE user_id = $1 AND task_id = $2)
	`, userID, taskID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}
	return exists, nil
}

// Insert records a completion. The (user, task) primary key makes the write
// idempotent: a duplicate claim, even a racing one, inserts nothing and
// returns false.
func (r *CompletionRepo) Insert(ctx context.Context, c *domain.Completion) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO completions (user_id, task_id, reward, verified)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, task_id) DO NOTHING
	`, c.UserID, c.TaskID, c.Reward, c.Verified)
	if err != nil {
		return false, fmt.Errorf("insert completion: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
