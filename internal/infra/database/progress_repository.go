package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/landing-leads/internal/entity"
)

type ProgressRepository struct {
	DB *sql.DB
}

func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Merge(ctx context.Context, p *entity.Progress) error {
	query := `
		INSERT INTO progress (user_id, data, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			data = progress.data || EXCLUDED.data,
			updated_at = NOW()
		RETURNING data, updated_at
	`

	var data []byte
	err := r.DB.QueryRowContext(ctx, query, p.UserID, string(p.Data)).Scan(&data, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert progress for user %d: %w", p.UserID, err)
	}

	p.Data = data
	return nil
}

func (r *ProgressRepository) FindByUserID(ctx context.Context, userID int64) (*entity.Progress, error) {
	query := `SELECT user_id, data, updated_at FROM progress WHERE user_id = $1`

	var (
		p    entity.Progress
		data []byte
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &data, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find progress for user %d: %w", userID, err)
	}

	p.Data = data
	return &p, nil
}
