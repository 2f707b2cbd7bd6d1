package domain

// IdeaScores are the 1-5 severity bands shown per idea. Total is the sum of
// the three axes, capped at 15.
type IdeaScores struct {
	Pain   int `json:"pain"`
	Repeat int `json:"repeat"`
	Pay    int `json:"pay"`
	Total  int `json:"total"`
}

// Idea is a synthesized summary of one bucket: scores, a bounded evidence
// subset drawn from that bucket, and short guidance text. Immutable once
// assembled into a report.
type Idea struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	OneLiner string     `json:"oneLiner"`
	Scores   IdeaScores `json:"scores"`
	Quotes   []Quote    `json:"quotes"`
	Insight  string     `json:"insight"`
	Build    string     `json:"build"`
	Actions  string     `json:"actions"`
}
