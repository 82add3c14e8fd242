package database

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/landing-leads/internal/entity"
)

func TestAnalyticsRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event, err := entity.NewAnalyticsEvent("lead_capture", "sess-1", json.RawMessage(`{"source":"modal"}`), nil, "ua", "")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analytics_events")).
		WithArgs(event.ID, "lead_capture", "sess-1", `{"source":"modal"}`, nil, "ua", nil, event.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewAnalyticsRepository(db).Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryCountByType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT type, COUNT(*) FROM analytics_events GROUP BY type")).
		WillReturnRows(sqlmock.NewRows([]string{"type", "count"}).AddRow("page_view", 10).AddRow("conversion", 2))

	counts, err := NewAnalyticsRepository(db).CountByType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"page_view": 10, "conversion": 2}, counts)
}

func TestAnalyticsRepositoryDeleteOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := time.Now().Add(-90 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analytics_events WHERE created_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := NewAnalyticsRepository(db).DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
