package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/landing-leads/internal/entity"
)

const leadColumns = `id, name, email, time_on_page, page_url, user_agent, ip_address,
	is_processed, processed_at, notes, created_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead        entity.Lead
		userAgent   sql.NullString
		ipAddress   sql.NullString
		processedAt sql.NullTime
		notes       sql.NullString
	)

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.TimeOnPage,
		&lead.PageURL,
		&userAgent,
		&ipAddress,
		&lead.IsProcessed,
		&processedAt,
		&notes,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.UserAgent = userAgent.String
	lead.IPAddress = ipAddress.String
	if processedAt.Valid {
		t := processedAt.Time
		lead.ProcessedAt = &t
	}
	if notes.Valid {
		n := notes.String
		lead.Notes = &n
	}

	return &lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, email, time_on_page, page_url, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_processed, created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Email,
		lead.TimeOnPage,
		lead.PageURL,
		nullString(lead.UserAgent),
		nullString(lead.IPAddress),
	).Scan(&lead.ID, &lead.IsProcessed, &lead.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM leads WHERE email = $1 LIMIT 1`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check lead email: %w", err)
	}
	return true, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead %d: %w", id, err)
	}
	return lead, nil
}

func (r *LeadRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryLeads(ctx, query, limit, offset)
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1 ORDER BY created_at DESC`
	return r.queryLeads(ctx, query, email)
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) MarkProcessed(ctx context.Context, id int64, notes string) error {
	query := `
		UPDATE leads
		SET is_processed = TRUE, processed_at = NOW(), notes = $1
		WHERE id = $2
	`
	if _, err := r.DB.ExecContext(ctx, query, notes, id); err != nil {
		return fmt.Errorf("mark lead %d processed: %w", id, err)
	}
	return nil
}

func (r *LeadRepository) MarkUnprocessed(ctx context.Context, id int64) error {
	query := `
		UPDATE leads
		SET is_processed = FALSE, processed_at = NULL
		WHERE id = $1
	`
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark lead %d unprocessed: %w", id, err)
	}
	return nil
}

// Update applies fields as a single UPDATE. Columns are applied in name order.
func (r *LeadRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("update lead %d: no fields", id)
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		if !entity.IsUpdatableLeadField(column) {
			return fmt.Errorf("update lead %d: %w: %s", id, entity.ErrInvalidUpdateField, column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	sets := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, column := range columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(column), i+1))
		args = append(args, fields[column])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update lead %d: %w", id, err)
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete lead %d: %w", id, err)
	}
	return nil
}

// Stats returns the raw aggregates; AvgTime is not rounded here.
func (r *LeadRepository) Stats(ctx context.Context) (*entity.LeadStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_processed),
			COUNT(*) FILTER (WHERE NOT is_processed),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days'),
			COALESCE(AVG(time_on_page), 0)::float8
		FROM leads
	`

	stats := &entity.LeadStats{ByPage: []entity.LeadPageCount{}}
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Processed,
		&stats.Unprocessed,
		&stats.Recent,
		&stats.AvgTime,
	)
	if err != nil {
		return nil, fmt.Errorf("lead counters: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT page_url, COUNT(*) FROM leads GROUP BY page_url ORDER BY page_url`)
	if err != nil {
		return nil, fmt.Errorf("leads by page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pc entity.LeadPageCount
		if err := rows.Scan(&pc.PageURL, &pc.Count); err != nil {
			return nil, fmt.Errorf("scan leads by page: %w", err)
		}
		stats.ByPage = append(stats.ByPage, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads by page: %w", err)
	}

	return stats, nil
}
