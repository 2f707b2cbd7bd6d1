package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"idea-miner/internal/domain"
)

type feedbackRepository struct {
	db DB
}

// NewFeedbackRepository creates the Postgres-backed idea feedback store.
func NewFeedbackRepository(db DB) domain.FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Upsert records a visitor's verdict on an idea; a repeated verdict from
// the same visitor overwrites the previous one.
func (r *feedbackRepository) Upsert(ctx context.Context, fb *domain.IdeaFeedback) error {
	query := `
		INSERT INTO idea_feedback (id, report_id, idea_id, visitor_id, verdict, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (report_id, idea_id, visitor_id)
		DO UPDATE SET verdict = EXCLUDED.verdict, created_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		uuid.New(),
		fb.ReportID,
		fb.IdeaID,
		fb.VisitorID,
		string(fb.Verdict),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert feedback: %w", err)
	}
	return nil
}
