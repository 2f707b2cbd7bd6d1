package domain_test

import (
	"testing"
	"time"

	"idea-miner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeReportID(t *testing.T) {
	query := domain.Query{Keyword: "procrastination", Subreddit: "adhd", Range: domain.RangeMonth}
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Deterministic for a fixed clock", func(t *testing.T) {
		assert.Equal(t, domain.MakeReportID(query, clock), domain.MakeReportID(query, clock))
	})

	t.Run("Changes with the clock", func(t *testing.T) {
		later := clock.Add(time.Millisecond)
		assert.NotEqual(t, domain.MakeReportID(query, clock), domain.MakeReportID(query, later))
	})

	t.Run("Changes with the query", func(t *testing.T) {
		other := query
		other.Keyword = "burnout"
		assert.NotEqual(t, domain.MakeReportID(query, clock), domain.MakeReportID(other, clock))
	})

	t.Run("Short fixed-length id", func(t *testing.T) {
		assert.Len(t, domain.MakeReportID(query, clock), 12)
	})
}

func TestComputeStats(t *testing.T) {
	t.Run("Counts distinct posts and retained comments", func(t *testing.T) {
		quotes := []domain.Quote{
			{Kind: domain.QuoteKindPost, Text: "t", PostID: "p1"},
			{Kind: domain.QuoteKindComment, Text: "t", PostID: "p1"},
			{Kind: domain.QuoteKindComment, Text: "t", PostID: "p1"},
			{Kind: domain.QuoteKindComment, Text: "t", PostID: "p2"},
		}

		stats := domain.ComputeStats(quotes)

		assert.Equal(t, 2, stats.Posts)
		assert.Equal(t, 3, stats.Comments)
	})

	t.Run("Empty input counts zero", func(t *testing.T) {
		stats := domain.ComputeStats(nil)
		assert.Zero(t, stats.Posts)
		assert.Zero(t, stats.Comments)
	})
}

func TestAssembleReport(t *testing.T) {
	query := domain.Query{Keyword: "standups", Range: domain.RangeWeek}
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Empty corpus still assembles a valid report", func(t *testing.T) {
		report := domain.AssembleReport(query, nil, nil, clock)

		require.NotNil(t, report)
		assert.NotEmpty(t, report.ID)
		assert.Equal(t, "2026-03-01T12:00:00Z", report.CreatedAt)
		assert.Equal(t, query, report.Query)
		assert.NotNil(t, report.Ideas)
		assert.Empty(t, report.Ideas)
		assert.Zero(t, report.Stats.Posts)
		assert.Zero(t, report.Stats.Comments)
	})

	t.Run("End to end over a small corpus", func(t *testing.T) {
		quotes := []domain.Quote{
			{Kind: domain.QuoteKindPost, Text: "daily standups waste everyone's time", PostID: "p1", Author: "alice"},
			{Kind: domain.QuoteKindComment, Text: "I hate long meetings", PostID: "p1", Author: "bob"},
		}

		report := domain.AssembleReport(query, quotes, domain.ExtractIdeas(quotes), clock)

		assert.Equal(t, 1, report.Stats.Posts)
		assert.Equal(t, 1, report.Stats.Comments)
		require.Len(t, report.Ideas, 2)
		assert.LessOrEqual(t, len(report.Ideas), domain.MaxIdeasPerReport)
		for _, idea := range report.Ideas {
			assert.NotEmpty(t, idea.ID)
			assert.NotEmpty(t, idea.Title)
		}
	})
}
