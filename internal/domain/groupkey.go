package domain

import "strings"

// MiscGroupKey is the sentinel bucket for texts with no significant tokens.
const MiscGroupKey = "misc"

const (
	minTokenLength = 4
	maxKeyTokens   = 6
)

var stopWords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {},
	"what": {}, "when": {}, "your": {}, "they": {}, "them": {}, "just": {},
}

// GroupKey reduces text to the clustering signature: lower-case, strip
// everything outside [a-z0-9] and whitespace, drop tokens shorter than 4
// characters or in the stop-word set, then hyphen-join the first 6
// survivors in their original order.
//
// The key is order-sensitive and position-truncated, not a sorted bag of
// words: the same tokens in a different order land in different buckets.
func GroupKey(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	var kept []string
	for _, tok := range strings.Fields(b.String()) {
		if len(tok) < minTokenLength {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
		if len(kept) == maxKeyTokens {
			break
		}
	}

	if len(kept) == 0 {
		return MiscGroupKey
	}
	return strings.Join(kept, "-")
}
