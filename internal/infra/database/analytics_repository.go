package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xavierca1/landing-leads/internal/entity"
)

type AnalyticsRepository struct {
	DB *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) Create(ctx context.Context, e *entity.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events
			(id, type, session_id, data, client_timestamp, user_agent, ip_address, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		e.Type,
		nullString(e.SessionID),
		string(e.Data),
		e.ClientTimestamp,
		nullString(e.UserAgent),
		nullString(e.IPAddress),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analytics event: %w", err)
	}
	return nil
}

func (r *AnalyticsRepository) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT type, COUNT(*) FROM analytics_events GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("count analytics events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			eventType string
			count     int
		)
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("scan analytics count: %w", err)
		}
		counts[eventType] = count
	}

	return counts, rows.Err()
}

func (r *AnalyticsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM analytics_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge analytics events: %w", err)
	}
	return res.RowsAffected()
}
