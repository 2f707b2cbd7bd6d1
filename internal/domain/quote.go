package domain

// QuoteKind distinguishes where a quote's text came from.
type QuoteKind string

const (
	QuoteKindPost    QuoteKind = "post"
	QuoteKindComment QuoteKind = "comment"
)

// Range selects the time window used when searching for source material.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// Valid reports whether r is one of the supported search windows.
func (r Range) Valid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeYear:
		return true
	}
	return false
}

// Quote is one evidentiary text fragment with its provenance metadata.
// Text is already normalized and length-bounded; empty-text records are
// dropped at the acquisition boundary and never reach the pipeline.
type Quote struct {
	Kind       QuoteKind `json:"kind"`
	Text       string    `json:"text"`
	Subreddit  string    `json:"subreddit"`
	PostID     string    `json:"postId"`
	CommentID  string    `json:"commentId,omitempty"`
	Author     string    `json:"author"`
	Score      int       `json:"score"`
	CreatedUTC int64     `json:"createdUtc"`
	Permalink  string    `json:"permalink"`
}

// Query echoes the request parameters that produced a report.
type Query struct {
	Keyword   string `json:"keyword"`
	Subreddit string `json:"subreddit,omitempty"`
	Range     Range  `json:"range"`
}
