package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clickstar/taskbot/internal/domain"
)

type TaskRepo struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx, `
		SELECT id, task_type, title, description, reward, target, available, created_at
		FROM tasks WHERE id = $1
	`, id).Scan(&t.ID, &t.Type, &t.Title, &t.Description, &t.Reward, &t.Target, &t.Available, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// ListAvailable returns available tasks, optionally filtered by type.
// Order follows the catalog scan order.
func (r *TaskRepo) ListAvailable(ctx context.Context, filter domain.TaskType) ([]domain.Task, error) {
	query := `
		SELECT id, task_type, title, description, reward, target, available, created_at
		FROM tasks WHERE available
	`
	args := []any{}
	if filter != "" {
		query += ` AND task_type = $1`
		args = append(args, string(filter))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Type, &t.Title, &t.Description, &t.Reward, &t.Target, &t.Available, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Upsert(ctx context.Context, t *domain.Task) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (id, task_type, title, description, reward, target, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			task_type = EXCLUDED.task_type,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			reward = EXCLUDED.reward,
			target = EXCLUDED.target,
			available = EXCLUDED.available
	`, t.ID, string(t.Type), t.Title, t.Description, t.Reward, t.Target, t.Available)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepo) SetAvailable(ctx context.Context, id string, available bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE tasks SET available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("set task availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}
