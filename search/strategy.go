package search

import (
	"fmt"
	"strings"

	"github.com/poiesic/foodsearch/textnorm"
)

// Strategy turns a query into tokens and scores index entries against them.
// Score returns false when the entry must not appear in the results.
// Implementations must be safe for concurrent use.
type Strategy interface {
	Name() string
	QueryTokens(query string) []string
	Score(queryTokens []string, entry *IndexedEntry) (float64, bool)
}

// Strategy names accepted by StrategyByName.
const (
	ContainmentStrategyName = "containment"
	FuzzyStrategyName       = "fuzzy"
)

// ContainmentStrategy is the coarse catalog ranking. Each query token earns 2
// when some candidate token equals it and 1 when one contains the other; a
// token with neither rejects the candidate. The score is the sum.
type ContainmentStrategy struct{}

var _ Strategy = ContainmentStrategy{}

func (ContainmentStrategy) Name() string { return ContainmentStrategyName }

// QueryTokens keeps stopwords.
func (ContainmentStrategy) QueryTokens(query string) []string {
	return textnorm.Tokenize(query, false)
}

func (ContainmentStrategy) Score(queryTokens []string, entry *IndexedEntry) (float64, bool) {
	if len(queryTokens) == 0 || entry == nil {
		return 0, false
	}

	var total float64
	for _, q := range queryTokens {
		best := 0.0
		for _, c := range entry.Tokens {
			if c == q {
				best = 2
				break
			}
			if best == 0 && (strings.Contains(c, q) || strings.Contains(q, c)) {
				best = 1
			}
		}
		if best == 0 {
			return 0, false
		}
		total += best
	}
	return total, true
}

// FuzzyStrategy is the precision-oriented ranking. Stopwords are dropped from
// both sides and the candidate is scored with RankQueryAgainstTokens.
type FuzzyStrategy struct{}

var _ Strategy = FuzzyStrategy{}

func (FuzzyStrategy) Name() string { return FuzzyStrategyName }

// QueryTokens drops stopwords.
func (FuzzyStrategy) QueryTokens(query string) []string {
	return textnorm.Tokenize(query, true)
}

func (FuzzyStrategy) Score(queryTokens []string, entry *IndexedEntry) (float64, bool) {
	if entry == nil {
		return 0, false
	}
	return RankQueryAgainstTokens(queryTokens, entry.ContentTokens)
}

// StrategyByName resolves a configured strategy name. The empty name selects
// the containment strategy.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ContainmentStrategyName:
		return ContainmentStrategy{}, nil
	case FuzzyStrategyName:
		return FuzzyStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
