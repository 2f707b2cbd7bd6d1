package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrReportConflict signals an insert with an already-stored report ID.
	ErrReportConflict = errors.New("report already exists")
	// ErrReportNotFound signals a lookup for an unknown report ID.
	ErrReportNotFound = errors.New("report not found")
)

// ReportSummary is the list-view projection of a stored report.
type ReportSummary struct {
	ID        string    `json:"id"`
	Keyword   string    `json:"keyword"`
	Subreddit string    `json:"subreddit,omitempty"`
	Range     Range     `json:"range"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReportRepository persists finished reports. Reports are insert-only: a
// second insert with the same ID must fail with ErrReportConflict.
type ReportRepository interface {
	Insert(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	ListRecent(ctx context.Context, limit int) ([]ReportSummary, error)
}

// FeedbackVerdict classifies a visitor's reaction to an idea.
type FeedbackVerdict string

const (
	VerdictLike    FeedbackVerdict = "like"
	VerdictDislike FeedbackVerdict = "dislike"
)

// IdeaFeedback records one visitor's verdict on one idea of one report.
// The extraction pipeline has no awareness of this data.
type IdeaFeedback struct {
	ReportID  string
	IdeaID    string
	VisitorID string
	Verdict   FeedbackVerdict
}

// FeedbackRepository stores idea feedback, last verdict wins per
// (report, idea, visitor).
type FeedbackRepository interface {
	Upsert(ctx context.Context, fb *IdeaFeedback) error
}
