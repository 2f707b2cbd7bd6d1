package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ReportStats counts the source material actually consumed by a run:
// distinct posts that contributed at least one quote, and the number of
// comment quotes retained.
type ReportStats struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

// Report is the complete, immutable output of one pipeline run. It is
// persisted verbatim keyed by ID and never updated afterwards.
type Report struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"createdAt"`
	Query     Query       `json:"query"`
	Stats     ReportStats `json:"stats"`
	Ideas     []Idea      `json:"ideas"`
}

// HashID derives the short stable identifier used for reports and ideas:
// the first 12 hex characters of the input's SHA-256.
func HashID(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:12]
}

// MakeReportID hashes the query fields together with the generation instant
// (millisecond precision). The clock is a parameter so the function stays
// reproducible in tests; in production each run gets a unique identity even
// for identical queries.
func MakeReportID(q Query, now time.Time) string {
	return HashID(fmt.Sprintf("%s|%s|%s|%d", q.Keyword, q.Subreddit, q.Range, now.UnixMilli()))
}

// ComputeStats recomputes the stats block from the quotes the pipeline
// consumed, not from the larger set of fetched records.
func ComputeStats(quotes []Quote) ReportStats {
	posts := make(map[string]struct{})
	comments := 0
	for _, q := range quotes {
		posts[q.PostID] = struct{}{}
		if q.Kind == QuoteKindComment {
			comments++
		}
	}
	return ReportStats{Posts: len(posts), Comments: comments}
}

// AssembleReport wraps ranked ideas with the query echo, recomputed stats
// and time-derived identifiers. An empty quote list yields a valid report
// with an empty idea list and zero stats.
func AssembleReport(q Query, quotes []Quote, ideas []Idea, now time.Time) *Report {
	if ideas == nil {
		ideas = []Idea{}
	}
	return &Report{
		ID:        MakeReportID(q, now),
		CreatedAt: now.UTC().Format(time.RFC3339),
		Query:     q,
		Stats:     ComputeStats(quotes),
		Ideas:     ideas,
	}
}

// ExtractIdeas runs the full heuristic pipeline over an already-gathered
// quote list: cluster, rank, synthesize. It is a pure, synchronous
// transform with no I/O; per-run state lives on the stack and is discarded
// when it returns.
func ExtractIdeas(quotes []Quote) []Idea {
	return SynthesizeIdeas(RankBuckets(Cluster(quotes)))
}
