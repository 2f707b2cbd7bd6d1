package domain

import "strings"

const (
	// MaxPostTextLength caps the text kept from a post body.
	MaxPostTextLength = 800
	// MaxCommentTextLength caps the text kept from a comment body.
	MaxCommentTextLength = 600
)

// Normalize collapses every run of whitespace to a single space and trims
// the ends. No case folding or punctuation handling happens here.
// Normalize is idempotent.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate hard-caps text at maxLen characters with a plain prefix cut.
// It counts runes so a multi-byte character is never split.
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}
