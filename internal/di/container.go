package di

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"idea-miner/internal/adapter/miner_http"
	"idea-miner/internal/adapter/moonshot"
	"idea-miner/internal/adapter/reddit"
	"idea-miner/internal/adapter/repository"
	"idea-miner/internal/domain"
	"idea-miner/internal/infra/config"
	"idea-miner/internal/infra/httpclient"
	"idea-miner/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// Repositories
	ReportRepo   domain.ReportRepository
	FeedbackRepo domain.FeedbackRepository

	// Usecases
	GenerateUsecase usecase.GenerateReportUsecase
	AnalyzeUsecase  usecase.AnalyzeReportUsecase
	GetUsecase      usecase.GetReportUsecase
	ImportUsecase   usecase.ImportReportUsecase

	// HTTP layer
	Handler     *miner_http.Handler
	RateLimiter *miner_http.RateLimiter
}

// NewApplicationComponents wires all dependencies from config and database pool.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) *ApplicationComponents {
	// Repositories
	reportRepo := repository.NewReportRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)

	// Shared HTTP clients with connection pooling
	redditHTTP := httpclient.NewPooledClient(cfg.Reddit.Timeout)
	moonshotHTTP := httpclient.NewPooledClient(cfg.Moonshot.Timeout)

	// External clients
	redditClient := reddit.NewClientWithCache(
		cfg.Reddit.BaseURL, cfg.Reddit.UserAgent, redditHTTP,
		cfg.Cache.Size, cfg.Cache.TTL,
	)
	gatherer := reddit.NewGatherer(redditClient, log)
	llm := moonshot.NewClient(cfg.Moonshot.BaseURL, cfg.Moonshot.APIKey, cfg.Moonshot.Model, moonshotHTTP)

	// Usecases
	generateUsecase := usecase.NewGenerateReportUsecase(gatherer, reportRepo, nil, log)
	analyzeUsecase := usecase.NewAnalyzeReportUsecase(
		gatherer, llm,
		usecase.NewAnalysisPromptBuilder(), usecase.NewOutputValidator(),
		reportRepo, nil, log,
	)
	getUsecase := usecase.NewGetReportUsecase(reportRepo)
	importUsecase := usecase.NewImportReportUsecase(reportRepo)

	// HTTP layer
	handler := miner_http.NewHandler(generateUsecase, analyzeUsecase, getUsecase, importUsecase, reportRepo, feedbackRepo)
	limiter := miner_http.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.MaxClients)

	return &ApplicationComponents{
		ReportRepo:      reportRepo,
		FeedbackRepo:    feedbackRepo,
		GenerateUsecase: generateUsecase,
		AnalyzeUsecase:  analyzeUsecase,
		GetUsecase:      getUsecase,
		ImportUsecase:   importUsecase,
		Handler:         handler,
		RateLimiter:     limiter,
	}
}
