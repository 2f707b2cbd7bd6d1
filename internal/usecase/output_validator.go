package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"idea-miner/internal/domain"
)

// SynthesisParseError signals that the model's output could not be parsed
// into the expected idea structure. Raw carries the unparsed payload for
// diagnostics; the heuristic path is unaffected and remains available to
// the caller as a fallback.
type SynthesisParseError struct {
	Raw string
	Err error
}

func (e *SynthesisParseError) Error() string {
	return fmt.Sprintf("synthesis output parse failed: %v", e.Err)
}

func (e *SynthesisParseError) Unwrap() error { return e.Err }

// ModelIdea is one idea cluster as emitted by the model. Score fields use
// zero as "missing" so they can be defaulted.
type ModelIdea struct {
	Title        string  `json:"title"`
	OneLiner     string  `json:"oneLiner"`
	Pain         float64 `json:"pain"`
	Repeat       float64 `json:"repeat"`
	Pay          float64 `json:"pay"`
	Insight      string  `json:"insight"`
	Build        string  `json:"build"`
	Actions      string  `json:"actions"`
	QuoteIndices []int   `json:"quoteIndices"`
}

type modelIdeaList struct {
	Ideas []ModelIdea `json:"ideas"`
}

// OutputValidator parses and normalizes model synthesis output.
type OutputValidator struct{}

// NewOutputValidator creates a validator instance (stateless).
func NewOutputValidator() OutputValidator {
	return OutputValidator{}
}

// Validate strips markdown code fences and parses the JSON idea list. Any
// failure comes back as a SynthesisParseError carrying the raw payload.
func (OutputValidator) Validate(raw string) ([]ModelIdea, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, &SynthesisParseError{Raw: raw, Err: errors.New("empty response")}
	}

	var parsed modelIdeaList
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &SynthesisParseError{Raw: raw, Err: err}
	}
	if parsed.Ideas == nil {
		return nil, &SynthesisParseError{Raw: raw, Err: errors.New("missing ideas array")}
	}

	return parsed.Ideas, nil
}

// BuildIdeas converts model output into the report's idea shape: scores are
// defaulted to 3 when missing and clamped to [1,5], evidence indices are
// 1-based into the supplied quote list with out-of-range values clamped to
// the nearest valid index, and missing text fields get boilerplate
// defaults. Idea ids derive from the report id and rank index.
func BuildIdeas(modelIdeas []ModelIdea, quotes []domain.Quote, reportID string) []domain.Idea {
	if len(modelIdeas) > domain.MaxIdeasPerReport {
		modelIdeas = modelIdeas[:domain.MaxIdeasPerReport]
	}

	ideas := make([]domain.Idea, 0, len(modelIdeas))
	for idx, m := range modelIdeas {
		pain := bandModelScore(m.Pain)
		repeat := bandModelScore(m.Repeat)
		pay := bandModelScore(m.Pay)
		total := pain + repeat + pay
		if total > 15 {
			total = 15
		}

		ideas = append(ideas, domain.Idea{
			ID:       domain.HashID(fmt.Sprintf("%s:%d", reportID, idx)),
			Title:    stringOr(m.Title, fmt.Sprintf("Idea %d", idx+1)),
			OneLiner: stringOr(m.OneLiner, "A solution to this recurring pain point."),
			Scores:   domain.IdeaScores{Pain: pain, Repeat: repeat, Pay: pay, Total: total},
			Quotes:   selectEvidence(m.QuoteIndices, quotes, idx),
			Insight:  stringOr(m.Insight, "Users express frustration with current solutions."),
			Build:    stringOr(m.Build, "MVP: Simple web app solving the core workflow."),
			Actions:  stringOr(m.Actions, "Launch on relevant subreddits and Product Hunt."),
		})
	}
	return ideas
}

// selectEvidence resolves the model's 1-based quote indices against the
// corpus. Without usable indices it falls back to a deterministic slice of
// the corpus so every idea still carries some evidence when available.
func selectEvidence(indices []int, quotes []domain.Quote, idx int) []domain.Quote {
	const maxModelEvidence = 5

	if len(quotes) == 0 {
		return []domain.Quote{}
	}

	if len(indices) > maxModelEvidence {
		indices = indices[:maxModelEvidence]
	}

	selected := make([]domain.Quote, 0, len(indices))
	for _, i := range indices {
		j := i - 1
		if j < 0 {
			j = 0
		}
		if j >= len(quotes) {
			j = len(quotes) - 1
		}
		selected = append(selected, quotes[j])
	}
	if len(selected) > 0 {
		return selected
	}

	lo := idx * 3
	if lo > len(quotes) {
		lo = len(quotes)
	}
	hi := lo + 3
	if hi > len(quotes) {
		hi = len(quotes)
	}
	fallback := make([]domain.Quote, hi-lo)
	copy(fallback, quotes[lo:hi])
	return fallback
}

func bandModelScore(v float64) int {
	if v == 0 {
		v = 3
	}
	band := int(math.Round(v))
	if band < 1 {
		band = 1
	}
	if band > 5 {
		band = 5
	}
	return band
}

func stringOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
