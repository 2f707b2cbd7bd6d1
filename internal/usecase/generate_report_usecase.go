package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"idea-miner/internal/domain"
)

// GenerateReportInput carries the validated request parameters for one run.
type GenerateReportInput struct {
	Keyword   string
	Subreddit string
	Range     domain.Range
}

// GenerateReportUsecase runs the heuristic extraction pipeline end to end:
// gather quotes, cluster, rank, synthesize, assemble, persist.
type GenerateReportUsecase interface {
	Execute(ctx context.Context, input GenerateReportInput) (*domain.Report, error)
}

type generateReportUsecase struct {
	gatherer domain.Gatherer
	repo     domain.ReportRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewGenerateReportUsecase wires the heuristic generation path. The clock is
// injected so report identity stays reproducible under test.
func NewGenerateReportUsecase(
	gatherer domain.Gatherer,
	repo domain.ReportRepository,
	now func() time.Time,
	logger *slog.Logger,
) GenerateReportUsecase {
	if now == nil {
		now = time.Now
	}
	return &generateReportUsecase{
		gatherer: gatherer,
		repo:     repo,
		now:      now,
		logger:   logger,
	}
}

func (u *generateReportUsecase) Execute(ctx context.Context, input GenerateReportInput) (*domain.Report, error) {
	query, err := buildQuery(input)
	if err != nil {
		return nil, err
	}

	quotes, err := u.gatherer.Gather(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to gather quotes: %w", err)
	}

	ideas := domain.ExtractIdeas(quotes)
	report := domain.AssembleReport(query, quotes, ideas, u.now())

	u.logger.Info("report_generated",
		slog.String("report_id", report.ID),
		slog.String("keyword", query.Keyword),
		slog.Int("quotes", len(quotes)),
		slog.Int("ideas", len(report.Ideas)))

	if err := u.repo.Insert(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	return report, nil
}

func buildQuery(input GenerateReportInput) (domain.Query, error) {
	keyword := strings.TrimSpace(input.Keyword)
	if keyword == "" {
		return domain.Query{}, fmt.Errorf("keyword is required")
	}
	if !input.Range.Valid() {
		return domain.Query{}, fmt.Errorf("invalid range %q", input.Range)
	}
	return domain.Query{
		Keyword:   keyword,
		Subreddit: strings.TrimSpace(input.Subreddit),
		Range:     input.Range,
	}, nil
}
