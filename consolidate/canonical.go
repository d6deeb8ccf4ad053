package consolidate

import (
	"slices"
	"strings"

	"github.com/poiesic/foodsearch/textnorm"
)

// CanonicalMergeName reduces a display name to the form used to detect
// duplicates: normalized, with MergePhrases applied and MergeStopwords and
// MergeDescriptors removed.
func CanonicalMergeName(name string) string {
	tokens := textnorm.Tokenize(name, false)
	out := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); {
		if rule, ok := matchPhrase(tokens[i:]); ok {
			if rule.Replacement != "" {
				out = append(out, rule.Replacement)
			}
			i += len(rule.Tokens)
			continue
		}
		tok := tokens[i]
		i++
		if _, ok := MergeStopwords[tok]; ok {
			continue
		}
		if _, ok := MergeDescriptors[tok]; ok {
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

func matchPhrase(tokens []string) (PhraseRule, bool) {
	for _, rule := range MergePhrases {
		n := len(rule.Tokens)
		if n > 0 && len(tokens) >= n && slices.Equal(tokens[:n], rule.Tokens) {
			return rule, true
		}
	}
	return PhraseRule{}, false
}
