package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the Combining Diacritical Marks block (U+0300..U+036F).
// Latin accented letters decompose under NFD into a base letter followed by
// one of these marks.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalize folds case and diacritics and reduces text to lowercase ASCII
// letters, digits and single spaces.
//
// Steps: lowercase, canonical decomposition (NFD), drop combining diacritical
// marks, replace every other rune outside [a-z0-9] with a space, collapse
// runs of whitespace, trim. The result is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	decomposed := norm.NFD.String(strings.ToLower(text))
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.Is(combiningDiacritics, r):
			return -1
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return ' '
		}
	}, decomposed)
	return strings.Join(strings.Fields(mapped), " ")
}

// Tokenize splits the normalized text into words in order of appearance.
// With removeStopwords set, members of ItalianStopwords are dropped.
// Duplicates are kept.
func Tokenize(text string, removeStopwords bool) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return []string{}
	}
	words := strings.Split(normalized, " ")
	if !removeStopwords {
		return words
	}
	filtered := words[:0]
	for _, w := range words {
		if !IsStopword(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// Unique returns tokens with duplicates removed, keeping first-seen order.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
