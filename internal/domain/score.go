package domain

import (
	"math"
	"strings"
)

// Cue vocabularies for the heuristic scorers. Matching is plain substring
// containment on the lower-cased text, so a cue can hit inside a longer
// unrelated word; scores produced that way are part of the report contract.
var (
	painCues = []string{"hate", "annoy", "frustr", "pain", "stuck", "can't", "cannot", "waste", "overwhelm", "hard"}
	payCues  = []string{"pay", "paid", "pricing", "subscription", "worth", "charge", "$", "usd"}
)

// PainScore estimates the frustration intensity of a single quote's text on
// a 0-5 scale in 0.5 steps. Each cue counts at most once; the hit count is
// halved and capped at 5.
func PainScore(text string) float64 {
	hits := cueHits(text, painCues)
	return math.Min(5, float64(hits)/2)
}

// PayScore estimates willingness-to-pay signals on a 0-5 scale. Each cue
// counts at most once; the hit count is capped at 5.
func PayScore(text string) float64 {
	hits := cueHits(text, payCues)
	return math.Min(5, float64(hits))
}

func cueHits(text string, cues []string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			hits++
		}
	}
	return hits
}

// RoundHalf rounds v to the nearest 0.5.
func RoundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

// severityBand coerces a 0-5 half-step average into the 1-5 integer band
// shown to users. An all-zero average is floored to 1 because 0 reads as
// "unscored" downstream.
func severityBand(avg float64) int {
	band := int(math.Round(math.Min(5, RoundHalf(avg))))
	if band < 1 {
		band = 1
	}
	return band
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
