package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenMatchScore(t *testing.T) {
	tests := []struct {
		name string
		q, t string
		want float64
	}{
		{name: "exact", q: "pasta", t: "pasta", want: 1.0},
		{name: "prefix", q: "pas", t: "pasta", want: 0.95},
		{name: "prefix too short", q: "pa", t: "pasta", want: 0},
		{name: "substring", q: "mola", t: "semola", want: 0.9},
		{name: "substring too short", q: "ola", t: "semola", want: 0},
		{name: "one typo in long token", q: "zuchine", t: "zucchine", want: 0.875},
		{name: "one typo in short token", q: "polo", t: "pollo", want: 0},
		{name: "short words never fuzzy match", q: "di", t: "da", want: 0},
		{name: "unrelated", q: "pasta", t: "pollo", want: 0},
		{name: "empty query token", q: "", t: "pasta", want: 0},
		{name: "empty candidate token", q: "pasta", t: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenMatchScore(tt.q, tt.t), 1e-9)
		})
	}
}

func TestTokenMatchScore_SelfIsOne(t *testing.T) {
	for _, tok := range []string{"a", "di", "uovo", "pasta", "mozzarella", "2"} {
		assert.Equal(t, 1.0, TokenMatchScore(tok, tok), tok)
	}
}

func TestTokenMatchScore_Symmetric(t *testing.T) {
	tokens := []string{"pas", "pasta", "pastasciutta", "semola", "mola", "zuchine", "zucchine", "spaghetti", "spagetti", "di", "pollo", "polo", ""}
	for _, a := range tokens {
		for _, b := range tokens {
			assert.Equal(t, TokenMatchScore(a, b), TokenMatchScore(b, a), "%q vs %q", a, b)
		}
	}
}

func TestTokenMatchScore_Range(t *testing.T) {
	tokens := []string{"pasta", "spaghetti", "spagetti", "mozzarella", "mozarella", "uovo", "uva"}
	for _, a := range tokens {
		for _, b := range tokens {
			s := TokenMatchScore(a, b)
			assert.True(t, s == 0 || (s >= MinEditSimilarity && s <= 1), "%q vs %q scored %v", a, b, s)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("pasta", "pasta"))
	assert.Equal(t, 1, Levenshtein("spaghetti", "spagetti"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 5, Levenshtein("", "pasta"))
}

func TestRankQueryAgainstTokens(t *testing.T) {
	candidate := []string{"pasta", "semola", "spaghetti"}

	t.Run("all tokens exact", func(t *testing.T) {
		score, ok := RankQueryAgainstTokens([]string{"pasta", "semola"}, candidate)
		assert.True(t, ok)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("mean of best scores", func(t *testing.T) {
		score, ok := RankQueryAgainstTokens([]string{"pas", "semola"}, candidate)
		assert.True(t, ok)
		assert.InDelta(t, 0.975, score, 1e-9)
	})

	t.Run("unmatched token rejects candidate", func(t *testing.T) {
		_, ok := RankQueryAgainstTokens([]string{"pasta", "pollo"}, candidate)
		assert.False(t, ok)
	})

	t.Run("empty query", func(t *testing.T) {
		_, ok := RankQueryAgainstTokens(nil, candidate)
		assert.False(t, ok)
	})

	t.Run("empty candidate", func(t *testing.T) {
		_, ok := RankQueryAgainstTokens([]string{"pasta"}, nil)
		assert.False(t, ok)
	})
}
