package miner_http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"idea-miner/internal/domain"
	"idea-miner/internal/usecase"
)

// Handler exposes the report API over HTTP. It owns request validation and
// status mapping; everything else is delegated to the usecases.
type Handler struct {
	generateUsecase usecase.GenerateReportUsecase
	analyzeUsecase  usecase.AnalyzeReportUsecase
	getUsecase      usecase.GetReportUsecase
	importUsecase   usecase.ImportReportUsecase
	reportRepo      domain.ReportRepository
	feedbackRepo    domain.FeedbackRepository
	validate        *validator.Validate
}

// NewHandler wires the HTTP handlers.
func NewHandler(
	generateUsecase usecase.GenerateReportUsecase,
	analyzeUsecase usecase.AnalyzeReportUsecase,
	getUsecase usecase.GetReportUsecase,
	importUsecase usecase.ImportReportUsecase,
	reportRepo domain.ReportRepository,
	feedbackRepo domain.FeedbackRepository,
) *Handler {
	return &Handler{
		generateUsecase: generateUsecase,
		analyzeUsecase:  analyzeUsecase,
		getUsecase:      getUsecase,
		importUsecase:   importUsecase,
		reportRepo:      reportRepo,
		feedbackRepo:    feedbackRepo,
		validate:        validator.New(),
	}
}

// Register attaches the routes to the echo instance. The rate limiter
// guards only the generation endpoints; reads stay unthrottled.
func (h *Handler) Register(e *echo.Echo, limiter *RateLimiter) {
	e.POST("/v1/reports", h.GenerateReport, limiter.Middleware())
	e.POST("/v1/reports/analyze", h.AnalyzeReport, limiter.Middleware())
	e.POST("/v1/reports/import", h.ImportReport)
	e.GET("/v1/reports", h.ListReports)
	e.GET("/v1/reports/:reportId", h.GetReport)
	e.POST("/v1/reports/:reportId/feedback", h.RecordFeedback)
}

type generateReportRequest struct {
	Keyword   string `json:"keyword" validate:"required,max=120"`
	Subreddit string `json:"subreddit" validate:"omitempty,max=80"`
	Range     string `json:"range" validate:"required,oneof=week month year"`
}

func (h *Handler) bindGenerateRequest(c echo.Context) (*generateReportRequest, error) {
	var req generateReportRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.New("invalid JSON")
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// GenerateReport runs the heuristic pipeline and returns the new report id.
// (POST /v1/reports)
func (h *Handler) GenerateReport(c echo.Context) error {
	req, err := h.bindGenerateRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	report, err := h.generateUsecase.Execute(c.Request().Context(), usecase.GenerateReportInput{
		Keyword:   req.Keyword,
		Subreddit: req.Subreddit,
		Range:     domain.Range(req.Range),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"reportId": report.ID})
}

// AnalyzeReport runs the model-based pipeline and returns the full report.
// (POST /v1/reports/analyze)
func (h *Handler) AnalyzeReport(c echo.Context) error {
	req, err := h.bindGenerateRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	report, err := h.analyzeUsecase.Execute(c.Request().Context(), usecase.GenerateReportInput{
		Keyword:   req.Keyword,
		Subreddit: req.Subreddit,
		Range:     domain.Range(req.Range),
	})
	if err != nil {
		var parseErr *usecase.SynthesisParseError
		if errors.As(err, &parseErr) {
			return c.JSON(http.StatusBadGateway, map[string]string{
				"error": "synthesis output parsing failed",
				"raw":   parseErr.Raw,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{"report": report})
}

// ImportReport stores an externally assembled report.
// (POST /v1/reports/import)
func (h *Handler) ImportReport(c echo.Context) error {
	var body struct {
		Report *domain.Report `json:"report"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
	}

	reportID, err := h.importUsecase.Execute(c.Request().Context(), body.Report)
	if err != nil {
		if errors.Is(err, domain.ErrReportConflict) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "report already exists"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"reportId": reportID})
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListReports returns summaries of the newest reports.
// (GET /v1/reports?limit=N)
func (h *Handler) ListReports(c echo.Context) error {
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	summaries, err := h.reportRepo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if summaries == nil {
		summaries = []domain.ReportSummary{}
	}

	return c.JSON(http.StatusOK, map[string]any{"reports": summaries})
}

// GetReport returns a stored report verbatim.
// (GET /v1/reports/:reportId)
func (h *Handler) GetReport(c echo.Context) error {
	report, err := h.getUsecase.Execute(c.Request().Context(), c.Param("reportId"))
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, report)
}

type feedbackRequest struct {
	IdeaID    string `json:"ideaId" validate:"required"`
	VisitorID string `json:"visitorId" validate:"required"`
	Verdict   string `json:"verdict" validate:"required,oneof=like dislike"`
}

// RecordFeedback stores a visitor's like/dislike for one idea.
// (POST /v1/reports/:reportId/feedback)
func (h *Handler) RecordFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	err := h.feedbackRepo.Upsert(c.Request().Context(), &domain.IdeaFeedback{
		ReportID:  c.Param("reportId"),
		IdeaID:    req.IdeaID,
		VisitorID: req.VisitorID,
		Verdict:   domain.FeedbackVerdict(req.Verdict),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
