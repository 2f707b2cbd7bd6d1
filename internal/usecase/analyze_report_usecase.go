package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"idea-miner/internal/domain"
)

// AnalyzeReportUsecase runs the model-based synthesis path: same quote
// corpus, same report contract, but titles, guidance text and scores come
// from a language model instead of the heuristic synthesizer.
type AnalyzeReportUsecase interface {
	Execute(ctx context.Context, input GenerateReportInput) (*domain.Report, error)
}

type analyzeReportUsecase struct {
	gatherer  domain.Gatherer
	llm       domain.LLMClient
	prompts   AnalysisPromptBuilder
	validator OutputValidator
	repo      domain.ReportRepository
	now       func() time.Time
	logger    *slog.Logger
}

// NewAnalyzeReportUsecase wires the model-based generation path.
func NewAnalyzeReportUsecase(
	gatherer domain.Gatherer,
	llm domain.LLMClient,
	prompts AnalysisPromptBuilder,
	validator OutputValidator,
	repo domain.ReportRepository,
	now func() time.Time,
	logger *slog.Logger,
) AnalyzeReportUsecase {
	if now == nil {
		now = time.Now
	}
	return &analyzeReportUsecase{
		gatherer:  gatherer,
		llm:       llm,
		prompts:   prompts,
		validator: validator,
		repo:      repo,
		now:       now,
		logger:    logger,
	}
}

func (u *analyzeReportUsecase) Execute(ctx context.Context, input GenerateReportInput) (*domain.Report, error) {
	query, err := buildQuery(input)
	if err != nil {
		return nil, err
	}

	quotes, err := u.gatherer.Gather(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to gather quotes: %w", err)
	}

	corpus := quotes
	if len(corpus) > MaxPromptQuotes {
		corpus = corpus[:MaxPromptQuotes]
	}

	prompt := u.prompts.Build(query.Keyword, query.Subreddit, corpus)
	raw, err := u.llm.Chat(ctx, []domain.Message{
		{Role: "system", Content: AnalysisSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis model call failed: %w", err)
	}

	modelIdeas, err := u.validator.Validate(raw)
	if err != nil {
		u.logger.Error("synthesis_parse_failed",
			slog.String("keyword", query.Keyword),
			slog.String("model", u.llm.Version()),
			slog.Int("raw_len", len(raw)))
		return nil, err
	}

	now := u.now()
	reportID := domain.MakeReportID(query, now)
	ideas := BuildIdeas(modelIdeas, corpus, reportID)

	report := &domain.Report{
		ID:        reportID,
		CreatedAt: now.UTC().Format(time.RFC3339),
		Query:     query,
		Stats:     domain.ComputeStats(quotes),
		Ideas:     ideas,
	}

	u.logger.Info("report_analyzed",
		slog.String("report_id", report.ID),
		slog.String("model", u.llm.Version()),
		slog.Int("quotes", len(quotes)),
		slog.Int("ideas", len(report.Ideas)))

	if err := u.repo.Insert(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	return report, nil
}
