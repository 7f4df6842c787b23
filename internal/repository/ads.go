package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clickstar/taskbot/internal/domain"
)

type AdRepo struct {
	db *pgxpool.Pool
}

func NewAdRepo(db *pgxpool.Pool) *AdRepo {
	return &AdRepo{db: db}
}

// SaveDraft upserts the user's single ad draft; a new flow overwrites any
// draft left from a previous one.
func (r *AdRepo) SaveDraft(ctx context.Context, d *domain.PendingAd) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pending_ads (user_id, state, ad_text, cost, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE SET
			state = EXCLUDED.state,
			ad_text = EXCLUDED.ad_text,
			cost = EXCLUDED.cost,
			created_at = now()
	`, d.UserID, string(d.State), d.Text, d.Cost)
	if err != nil {
		return fmt.Errorf("save ad draft: %w", err)
	}
	return nil
}

func (r *AdRepo) GetDraft(ctx context.Context, userID int64) (*domain.PendingAd, error) {
	var d domain.PendingAd
	err := r.db.QueryRow(ctx, `
		SELECT user_id, state, ad_text, cost, created_at
		FROM pending_ads WHERE user_id = $1
	`, userID).Scan(&d.UserID, &d.State, &d.Text, &d.Cost, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoPendingAd
		}
		return nil, fmt.Errorf("get ad draft: %w", err)
	}
	return &d, nil
}

func (r *AdRepo) DeleteDraft(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pending_ads WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete ad draft: %w", err)
	}
	return nil
}

func (r *AdRepo) Publish(ctx context.Context, ad *domain.PublishedAd) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO published_ads (id, owner_id, ad_text, cost, published_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ad.ID, ad.OwnerID, ad.Text, ad.Cost, ad.PublishedAt)
	if err != nil {
		return fmt.Errorf("publish ad: %w", err)
	}
	return nil
}
