package search

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Score levels returned by TokenMatchScore.
const (
	ExactScore     = 1.0
	PrefixScore    = 0.95
	SubstringScore = 0.9

	// MinEditSimilarity is the lowest edit-distance similarity still counted
	// as a match.
	MinEditSimilarity = 0.86

	minPrefixLen    = 3
	minSubstringLen = 4
)

// TokenMatchScore grades how well token q matches token t, in [0,1].
//
// Equal tokens score 1. When the shorter token has at least three runes and
// one token is a prefix of the other the score is 0.95; with at least four
// runes a substring in either direction scores 0.9. Anything else falls back
// to 1 - levenshtein/maxLen, kept only when it reaches MinEditSimilarity.
// The length gates stop short words from matching on edit distance alone.
// The function is symmetric and an empty token never matches.
func TokenMatchScore(q, t string) float64 {
	if q == "" || t == "" {
		return 0
	}
	if q == t {
		return ExactScore
	}

	lq, lt := utf8.RuneCountInString(q), utf8.RuneCountInString(t)
	shortest, longest := min(lq, lt), max(lq, lt, 1)

	if shortest >= minPrefixLen && (strings.HasPrefix(q, t) || strings.HasPrefix(t, q)) {
		return PrefixScore
	}
	if shortest >= minSubstringLen && (strings.Contains(q, t) || strings.Contains(t, q)) {
		return SubstringScore
	}

	sim := 1 - float64(Levenshtein(q, t))/float64(longest)
	if sim >= MinEditSimilarity {
		return sim
	}
	return 0
}

// Levenshtein returns the unit-cost insert/delete/substitute edit distance
// between a and b, counted in runes.
func Levenshtein(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// RankQueryAgainstTokens scores a candidate's token set against the query
// tokens. Each query token contributes its best TokenMatchScore over the
// candidate tokens; if any query token has no match the candidate is
// rejected. The aggregate is the mean of the per-token best scores.
func RankQueryAgainstTokens(queryTokens, candidateTokens []string) (float64, bool) {
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0, false
	}

	var total float64
	for _, q := range queryTokens {
		best := 0.0
		for _, c := range candidateTokens {
			if s := TokenMatchScore(q, c); s > best {
				best = s
				if best == ExactScore {
					break
				}
			}
		}
		if best == 0 {
			return 0, false
		}
		total += best
	}
	return total / float64(len(queryTokens)), true
}
