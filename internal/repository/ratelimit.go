package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RateLimitRepo struct {
	db *pgxpool.Pool
}

func NewRateLimitRepo(db *pgxpool.Pool) *RateLimitRepo {
	return &RateLimitRepo{db: db}
}

// CheckAndIncrement bumps the per-chat counter for the current minute window
// and returns the updated count. The window resets when a new minute starts.
func (r *RateLimitRepo) CheckAndIncrement(ctx context.Context, chatID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO rate_limits (chat_id, window_start, count)
		VALUES ($1, date_trunc('minute', now()), 1)
		ON CONFLICT (chat_id) DO UPDATE SET
			count = CASE
				WHEN rate_limits.window_start = date_trunc('minute', now())
				THEN rate_limits.count + 1
				ELSE 1
			END,
			window_start = date_trunc('minute', now())
		RETURNING count
	`, chatID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("rate limit increment: %w", err)
	}
	return count, nil
}
