package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clickstar/taskbot/internal/domain"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Get(ctx context.Context, telegramID int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT telegram_id, username, first_name, points, referrals, referred_by, created_at
		FROM users WHERE telegram_id = $1
	`, telegramID).Scan(&u.TelegramID, &u.Username, &u.FirstName, &u.Points, &u.Referrals, &u.ReferredBy, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Create inserts a user row with zero counters. Existing rows are left
// untouched; returns whether a row was actually inserted.
func (r *UserRepo) Create(ctx context.Context, telegramID int64, username, firstName string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO users (telegram_id, username, first_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (telegram_id) DO NOTHING
	`, telegramID, username, firstName)
	if err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepo) UpdateInfo(ctx context.Context, telegramID int64, username, firstName string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET username = $2, first_name = $3 WHERE telegram_id = $1
	`, telegramID, username, firstName)
	if err != nil {
		return fmt.Errorf("update user info: %w", err)
	}
	return nil
}

// AddPoints credits points in a single atomic update and returns the new
// balance.
func (r *UserRepo) AddPoints(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		UPDATE users SET points = points + $2 WHERE telegram_id = $1
		RETURNING points
	`, telegramID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("add points: %w", err)
	}
	return balance, nil
}

// DebitPoints deducts points after re-checking the balance under a row lock,
// so a concurrent debit cannot drive the balance negative.
func (r *UserRepo) DebitPoints(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx, `
		SELECT points FROM users WHERE telegram_id = $1 FOR UPDATE
	`, telegramID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("lock user: %w", err)
	}

	if balance < amount {
		return balance, domain.ErrInsufficientBalance
	}

	err = tx.QueryRow(ctx, `
		UPDATE users SET points = points - $2 WHERE telegram_id = $1
		RETURNING points
	`, telegramID, amount).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("debit points: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return balance, nil
}

func (r *UserRepo) AddReferral(ctx context.Context, telegramID int64, by int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		UPDATE users SET referrals = referrals + $2 WHERE telegram_id = $1
		RETURNING referrals
	`, telegramID, by).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("add referral: %w", err)
	}
	return count, nil
}

// SetReferredBy records the referrer exactly once. Returns false when the
// user already has a referrer, including when two attach attempts race.
func (r *UserRepo) SetReferredBy(ctx context.Context, telegramID, referrerID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET referred_by = $2
		WHERE telegram_id = $1 AND referred_by IS NULL
	`, telegramID, referrerID)
	if err != nil {
		return false, fmt.Errorf("set referred_by: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Top returns the leaderboard: referrals desc, then points desc.
func (r *UserRepo) Top(ctx context.Context, limit int) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT telegram_id, username, first_name, points, referrals, referred_by, created_at
		FROM users
		ORDER BY referrals DESC, points DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.TelegramID, &u.Username, &u.FirstName, &u.Points, &u.Referrals, &u.ReferredBy, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	err := r.db.QueryRow(ctx, `
		SELECT count(*), coalesce(sum(points), 0) FROM users
	`).Scan(&s.Users, &s.TotalPoints)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("user stats: %w", err)
	}
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM tasks`).Scan(&s.Tasks)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("task stats: %w", err)
	}
	return s, nil
}
