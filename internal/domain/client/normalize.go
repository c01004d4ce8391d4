package client

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after NFD decomposition, so that
// "Délices" and "Delices" normalize to the same token.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases a raw name, strips diacritics and punctuation,
// and collapses whitespace. The result is the canonical comparison form
// stored alongside the display name.
func NormalizeName(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		// Transformation failures are limited to malformed UTF-8; fall
		// back to the lowered input rather than losing the name.
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			// Punctuation separates tokens the same way whitespace does.
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits a raw name into its normalized token set.
func Tokenize(raw string) []string {
	normalized := NormalizeName(raw)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// TokenOverlapScore computes the similarity between a search name and a
// candidate identity: |intersection| / max(len(search), len(candidate)),
// plus a 0.3 bonus when any search token longer than 3 runes is a substring
// of the candidate's normalized name.
func TokenOverlapScore(searchTokens []string, candidateNormalized string) float64 {
	if len(searchTokens) == 0 || candidateNormalized == "" {
		return 0
	}

	candidateTokens := strings.Fields(candidateNormalized)
	if len(candidateTokens) == 0 {
		return 0
	}

	candidateSet := make(map[string]struct{}, len(candidateTokens))
	for _, t := range candidateTokens {
		candidateSet[t] = struct{}{}
	}

	intersection := 0
	for _, t := range searchTokens {
		if _, ok := candidateSet[t]; ok {
			intersection++
		}
	}

	denom := len(searchTokens)
	if len(candidateTokens) > denom {
		denom = len(candidateTokens)
	}
	score := float64(intersection) / float64(denom)

	for _, t := range searchTokens {
		if len([]rune(t)) > 3 && strings.Contains(candidateNormalized, t) {
			score += 0.3
			break
		}
	}

	return score
}
