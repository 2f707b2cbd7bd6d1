package usecase

import (
	"fmt"
	"strings"

	"idea-miner/internal/domain"
)

const (
	// MaxPromptQuotes bounds the corpus sent to the model to keep the
	// prompt inside the token budget.
	MaxPromptQuotes = 50
	// maxPromptQuoteLength clips individual quotes inside the prompt.
	maxPromptQuoteLength = 400
)

// AnalysisSystemPrompt pins the model to JSON-only output.
const AnalysisSystemPrompt = "You are a startup idea analyst. Always respond with valid JSON only."

// AnalysisPromptBuilder renders the analyst prompt for the model-based
// synthesis path. Quotes are numbered from 1; the model refers back to them
// by those indices.
type AnalysisPromptBuilder struct{}

// NewAnalysisPromptBuilder creates a prompt builder (stateless).
func NewAnalysisPromptBuilder() AnalysisPromptBuilder {
	return AnalysisPromptBuilder{}
}

// Build renders the user prompt for the given query and quote corpus. The
// caller is responsible for limiting quotes to MaxPromptQuotes.
func (AnalysisPromptBuilder) Build(keyword, subreddit string, quotes []domain.Quote) string {
	var quoteLines []string
	for i, q := range quotes {
		quoteLines = append(quoteLines, fmt.Sprintf("[%d] %s from r/%s (score: %d): %q",
			i+1,
			strings.ToUpper(string(q.Kind)),
			q.Subreddit,
			q.Score,
			domain.Truncate(q.Text, maxPromptQuoteLength)))
	}

	scope := fmt.Sprintf("%q", keyword)
	if subreddit != "" {
		scope += fmt.Sprintf(" in r/%s", subreddit)
	}

	var b strings.Builder
	b.WriteString("You are a product analyst specialized in identifying startup ideas from user pain points.\n\n")
	fmt.Fprintf(&b, "TASK: Analyze the following posts/comments about %s and identify 10 high-potential product/business ideas.\n\n", scope)
	b.WriteString("RAW DATA (quotes):\n")
	b.WriteString(strings.Join(quoteLines, "\n\n"))
	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString("1. Group related pain points into 10 distinct idea clusters\n")
	b.WriteString("2. For each idea, provide:\n")
	b.WriteString("   - title: A catchy, specific product name (not generic like \"Idea 1\")\n")
	b.WriteString("   - oneLiner: One sentence describing the core value proposition\n")
	b.WriteString("   - pain: Rate 1-5 (how painful is this problem?)\n")
	b.WriteString("   - repeat: Rate 1-5 (how often do users encounter this?)\n")
	b.WriteString("   - pay: Rate 1-5 (willingness to pay based on mentions of money/pricing)\n")
	b.WriteString("   - insight: 2-3 sentences analyzing the underlying pain and opportunity\n")
	b.WriteString("   - build: Concrete MVP features (3-5 bullet points)\n")
	b.WriteString("   - actions: Go-to-market steps (3-4 specific actions)\n")
	b.WriteString("   - quoteIndices: Select 3-5 most relevant quote indices from the raw data above\n\n")
	b.WriteString("OUTPUT FORMAT (JSON only):\n")
	b.WriteString(`{"ideas":[{"title":"...","oneLiner":"...","pain":4,"repeat":5,"pay":3,"insight":"...","build":"...","actions":"...","quoteIndices":[1,3,7]}]}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Be specific and actionable, not vague\n")
	b.WriteString("- Titles should sound like real products\n")
	b.WriteString("- Insights must reference actual patterns in the quotes\n")
	b.WriteString("- Build suggestions should be implementable by a small team\n")
	b.WriteString("- Return ONLY the JSON, no markdown code blocks")
	return b.String()
}
