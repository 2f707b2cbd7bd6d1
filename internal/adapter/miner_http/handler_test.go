package miner_http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-miner/internal/adapter/miner_http"
	"idea-miner/internal/domain"
	"idea-miner/internal/usecase"
)

type stubGenerate struct {
	report *domain.Report
	err    error
	input  usecase.GenerateReportInput
}

func (s *stubGenerate) Execute(_ context.Context, input usecase.GenerateReportInput) (*domain.Report, error) {
	s.input = input
	return s.report, s.err
}

type stubGet struct {
	report *domain.Report
	err    error
}

func (s *stubGet) Execute(context.Context, string) (*domain.Report, error) {
	return s.report, s.err
}

type stubImport struct {
	id  string
	err error
}

func (s *stubImport) Execute(context.Context, *domain.Report) (string, error) {
	return s.id, s.err
}

type stubFeedback struct {
	got *domain.IdeaFeedback
	err error
}

func (s *stubFeedback) Upsert(_ context.Context, fb *domain.IdeaFeedback) error {
	s.got = fb
	return s.err
}

type stubReportRepo struct {
	summaries []domain.ReportSummary
	gotLimit  int
}

func (s *stubReportRepo) Insert(context.Context, *domain.Report) error { return nil }

func (s *stubReportRepo) GetByID(context.Context, string) (*domain.Report, error) {
	return nil, domain.ErrReportNotFound
}

func (s *stubReportRepo) ListRecent(_ context.Context, limit int) ([]domain.ReportSummary, error) {
	s.gotLimit = limit
	return s.summaries, nil
}

func newTestServer(gen, analyze *stubGenerate, get *stubGet, imp *stubImport, fb *stubFeedback) *echo.Echo {
	return newTestServerWithRepo(gen, analyze, get, imp, fb, &stubReportRepo{})
}

func newTestServerWithRepo(gen, analyze *stubGenerate, get *stubGet, imp *stubImport, fb *stubFeedback, repo *stubReportRepo) *echo.Echo {
	if gen == nil {
		gen = &stubGenerate{}
	}
	if analyze == nil {
		analyze = &stubGenerate{}
	}
	if get == nil {
		get = &stubGet{}
	}
	if imp == nil {
		imp = &stubImport{}
	}
	if fb == nil {
		fb = &stubFeedback{}
	}

	e := echo.New()
	h := miner_http.NewHandler(gen, analyze, get, imp, repo, fb)
	h.Register(e, miner_http.NewRateLimiter(100, time.Minute, 10))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GenerateReport(t *testing.T) {
	t.Run("returns report id", func(t *testing.T) {
		gen := &stubGenerate{report: &domain.Report{ID: "abc123def456"}}
		e := newTestServer(gen, nil, nil, nil, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports", `{"keyword":"note taking","range":"week"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "abc123def456", resp["reportId"])
		assert.Equal(t, "note taking", gen.input.Keyword)
		assert.Equal(t, domain.RangeWeek, gen.input.Range)
	})

	t.Run("rejects missing keyword", func(t *testing.T) {
		e := newTestServer(nil, nil, nil, nil, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports", `{"range":"week"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects unknown range", func(t *testing.T) {
		e := newTestServer(nil, nil, nil, nil, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports", `{"keyword":"x","range":"fortnight"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		e := newTestServer(nil, nil, nil, nil, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports", `{"keyword":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps pipeline failure to 500", func(t *testing.T) {
		gen := &stubGenerate{err: errors.New("reddit unreachable")}
		e := newTestServer(gen, nil, nil, nil, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports", `{"keyword":"x","range":"month"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_AnalyzeReport(t *testing.T) {
	t.Run("returns full report", func(t *testing.T) {
		analyze := &stubGenerate{report: &domain.Report{
			ID:    "r1",
			Query: domain.Query{Keyword: "note taking", Range: domain.RangeYear},
			Ideas: []domain.Idea{},
		}}
		e := newTestServer(nil, analyze, nil, nil, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports/analyze", `{"keyword":"note taking","range":"year"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Report domain.Report `json:"report"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "r1", resp.Report.ID)
	})

	t.Run("surfaces parse failure as 502 with raw payload", func(t *testing.T) {
		analyze := &stubGenerate{err: &usecase.SynthesisParseError{Raw: "not json at all", Err: errors.New("bad")}}
		e := newTestServer(nil, analyze, nil, nil, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports/analyze", `{"keyword":"x","range":"week"}`)

		require.Equal(t, http.StatusBadGateway, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "not json at all", resp["raw"])
	})
}

func TestHandler_GetReport(t *testing.T) {
	t.Run("returns stored report", func(t *testing.T) {
		get := &stubGet{report: &domain.Report{ID: "r9", Query: domain.Query{Keyword: "crm", Range: domain.RangeWeek}}}
		e := newTestServer(nil, nil, get, nil, nil)

		rec := doJSON(e, http.MethodGet, "/v1/reports/r9", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp domain.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "crm", resp.Query.Keyword)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		get := &stubGet{err: domain.ErrReportNotFound}
		e := newTestServer(nil, nil, get, nil, nil)

		rec := doJSON(e, http.MethodGet, "/v1/reports/nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_ImportReport(t *testing.T) {
	t.Run("stores report and echoes id", func(t *testing.T) {
		imp := &stubImport{id: "imported01"}
		e := newTestServer(nil, nil, nil, imp, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports/import",
			`{"report":{"id":"imported01","createdAt":"2026-03-01T00:00:00Z","query":{"keyword":"x","range":"week"},"stats":{"posts":0,"comments":0},"ideas":[]}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "imported01", resp["reportId"])
	})

	t.Run("duplicate id is 409", func(t *testing.T) {
		imp := &stubImport{err: domain.ErrReportConflict}
		e := newTestServer(nil, nil, nil, imp, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports/import", `{"report":{"id":"dup","query":{"keyword":"x","range":"week"}}}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid report is 400", func(t *testing.T) {
		imp := &stubImport{err: errors.New("report keyword is required")}
		e := newTestServer(nil, nil, nil, imp, nil)

		rec := doJSON(e, http.MethodPost, "/v1/reports/import", `{"report":{"id":"r","query":{"range":"week"}}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_ListReports(t *testing.T) {
	t.Run("returns summaries with default limit", func(t *testing.T) {
		repo := &stubReportRepo{summaries: []domain.ReportSummary{
			{ID: "r1", Keyword: "crm", Range: domain.RangeWeek, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		}}
		e := newTestServerWithRepo(nil, nil, nil, nil, nil, repo)

		rec := doJSON(e, http.MethodGet, "/v1/reports", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 20, repo.gotLimit)
		var resp struct {
			Reports []domain.ReportSummary `json:"reports"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Reports, 1)
		assert.Equal(t, "crm", resp.Reports[0].Keyword)
	})

	t.Run("caps the limit", func(t *testing.T) {
		repo := &stubReportRepo{}
		e := newTestServerWithRepo(nil, nil, nil, nil, nil, repo)

		rec := doJSON(e, http.MethodGet, "/v1/reports?limit=500", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 100, repo.gotLimit)
	})

	t.Run("rejects non-numeric limit", func(t *testing.T) {
		e := newTestServer(nil, nil, nil, nil, nil)

		rec := doJSON(e, http.MethodGet, "/v1/reports?limit=lots", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty store yields empty array", func(t *testing.T) {
		e := newTestServer(nil, nil, nil, nil, nil)

		rec := doJSON(e, http.MethodGet, "/v1/reports", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"reports":[]}`, rec.Body.String())
	})
}

func TestHandler_RecordFeedback(t *testing.T) {
	t.Run("records verdict", func(t *testing.T) {
		fb := &stubFeedback{}
		e := newTestServer(nil, nil, nil, nil, fb)

		rec := doJSON(e, http.MethodPost, "/v1/reports/r1/feedback",
			`{"ideaId":"i1","visitorId":"v1","verdict":"like"}`)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, fb.got)
		assert.Equal(t, "r1", fb.got.ReportID)
		assert.Equal(t, "i1", fb.got.IdeaID)
		assert.Equal(t, domain.VerdictLike, fb.got.Verdict)
	})

	t.Run("rejects unknown verdict", func(t *testing.T) {
		fb := &stubFeedback{}
		e := newTestServer(nil, nil, nil, nil, fb)

		rec := doJSON(e, http.MethodPost, "/v1/reports/r1/feedback",
			`{"ideaId":"i1","visitorId":"v1","verdict":"meh"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, fb.got)
	})
}
