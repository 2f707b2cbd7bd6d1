package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"idea-miner/internal/domain"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repositories need; pgxmock
// satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type reportRepository struct {
	db DB
}

// NewReportRepository creates the Postgres-backed report store.
func NewReportRepository(db DB) domain.ReportRepository {
	return &reportRepository{db: db}
}

// Insert stores one finished report verbatim (JSONB payload plus query
// columns for listing). Reports are insert-only; a duplicate id maps to
// domain.ErrReportConflict.
func (r *reportRepository) Insert(ctx context.Context, report *domain.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO reports (id, keyword, subreddit, time_range, report, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	var subreddit *string
	if report.Query.Subreddit != "" {
		subreddit = &report.Query.Subreddit
	}

	_, err = r.db.Exec(ctx, query,
		report.ID,
		report.Query.Keyword,
		subreddit,
		string(report.Query.Range),
		payload,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrReportConflict
		}
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetByID returns the stored report verbatim.
func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := `SELECT report FROM reports WHERE id = $1`

	var payload []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// ListRecent returns summaries of the newest reports.
func (r *reportRepository) ListRecent(ctx context.Context, limit int) ([]domain.ReportSummary, error) {
	query := `
		SELECT id, keyword, subreddit, time_range, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ReportSummary
	for rows.Next() {
		var s domain.ReportSummary
		var subreddit pgtype.Text
		var timeRange string
		if err := rows.Scan(&s.ID, &s.Keyword, &subreddit, &timeRange, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report summary: %w", err)
		}
		s.Subreddit = subreddit.String
		s.Range = domain.Range(timeRange)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return summaries, nil
}
