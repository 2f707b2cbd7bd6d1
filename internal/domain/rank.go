package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	// MaxIdeasPerReport bounds the ranked idea list.
	MaxIdeasPerReport = 10
	// MaxQuotesPerIdea bounds the evidence subset kept per idea.
	MaxQuotesPerIdea = 7
)

// Default guidance text used when no richer synthesis is available. The
// contract only requires these fields to be non-empty.
const (
	defaultOneLiner = "A lightweight tool to reduce this recurring pain using a focused workflow."
	defaultInsight  = "Users repeatedly describe this as friction in their workflow. The pain shows up across multiple comments and posts."
	defaultBuild    = "MVP: (1) input → (2) extract/organize → (3) output a clean artifact (template/report) with one-click sharing."
	defaultActions  = "Launch: ship a free report, post to relevant subreddits (non-spam), write SEO pages for the keyword cluster, and record a short demo."
)

// BucketAvgPain is the arithmetic mean pain score over every quote in the
// bucket. An empty bucket averages to zero.
func BucketAvgPain(b Bucket) float64 {
	if len(b.Quotes) == 0 {
		return 0
	}
	sum := 0.0
	for _, q := range b.Quotes {
		sum += PainScore(q.Text)
	}
	return sum / float64(len(b.Quotes))
}

func bucketAvgPay(b Bucket) float64 {
	if len(b.Quotes) == 0 {
		return 0
	}
	sum := 0.0
	for _, q := range b.Quotes {
		sum += PayScore(q.Text)
	}
	return sum / float64(len(b.Quotes))
}

// RankBuckets orders buckets by descending average pain and keeps the top
// MaxIdeasPerReport. The sort is stable so equal-pain buckets, which are
// common with the coarse scorer, keep their first-discovery order. Buckets
// past the cap are dropped silently; that truncation is policy, not an
// error.
func RankBuckets(buckets []Bucket) []Bucket {
	ranked := make([]Bucket, len(buckets))
	copy(ranked, buckets)

	avg := make(map[string]float64, len(ranked))
	for _, b := range ranked {
		avg[b.Key] = BucketAvgPain(b)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return avg[ranked[i].Key] > avg[ranked[j].Key]
	})

	if len(ranked) > MaxIdeasPerReport {
		ranked = ranked[:MaxIdeasPerReport]
	}
	return ranked
}

// SynthesizeIdeas turns ranked buckets into the heuristic idea list. Every
// bucket becomes exactly one idea; pain and pay are the bucket-wide means
// banded into [1,5], repeat is the distinct-author count halved, and the
// evidence subset is the first MaxQuotesPerIdea quotes in bucket order.
func SynthesizeIdeas(ranked []Bucket) []Idea {
	ideas := make([]Idea, 0, len(ranked))
	for idx, b := range ranked {
		pain := severityBand(BucketAvgPain(b))
		pay := severityBand(bucketAvgPay(b))

		authors := make(map[string]struct{}, len(b.Quotes))
		for _, q := range b.Quotes {
			authors[q.Author] = struct{}{}
		}
		repeat := clampInt(int(math.Round(float64(len(authors))/2)), 1, 5)

		total := clampInt(pain+repeat+pay, 1, 15)

		picked := b.Quotes
		if len(picked) > MaxQuotesPerIdea {
			picked = picked[:MaxQuotesPerIdea]
		}
		quotes := make([]Quote, len(picked))
		copy(quotes, picked)

		ideas = append(ideas, Idea{
			ID:       HashID(fmt.Sprintf("%s:%d", b.Key, idx)),
			Title:    fmt.Sprintf("Idea %d: %s", idx+1, strings.ReplaceAll(b.Key, "-", " ")),
			OneLiner: defaultOneLiner,
			Scores:   IdeaScores{Pain: pain, Repeat: repeat, Pay: pay, Total: total},
			Quotes:   quotes,
			Insight:  defaultInsight,
			Build:    defaultBuild,
			Actions:  defaultActions,
		})
	}
	return ideas
}
