package search

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"github.com/poiesic/foodsearch/core"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Result is one ranked match.
type Result struct {
	Record   core.FoodRecord
	Score    float64
	Position int
}

// Searcher ranks an Index against free-text queries.
type Searcher struct {
	index    *Index
	strategy Strategy
	limit    int
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithStrategy sets the ranking strategy.
// Default is ContainmentStrategy.
func WithStrategy(strategy Strategy) Option {
	return func(s *Searcher) error {
		if strategy == nil {
			strategy = ContainmentStrategy{}
		}
		s.strategy = strategy
		return nil
	}
}

// WithLimit caps the number of results. Zero means no limit.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit < 0 {
			return ErrInvalidLimit
		}
		s.limit = limit
		return nil
	}
}

// NewSearcher creates a new searcher over index.
func NewSearcher(index *Index, opts ...Option) (*Searcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		index:    index,
		strategy: ContainmentStrategy{},
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Strategy returns the ranking strategy in use.
func (s *Searcher) Strategy() Strategy {
	return s.strategy
}

// Search returns the records matching query in rank order.
// A query without usable tokens yields an empty slice.
func (s *Searcher) Search(query string) []core.FoodRecord {
	results := s.RankWithMonitor(query, nil)
	records := make([]core.FoodRecord, len(results))
	for i, r := range results {
		records[i] = r.Record
	}
	return records
}

// Rank returns scored matches for query in rank order.
func (s *Searcher) Rank(query string) []Result {
	return s.RankWithMonitor(query, nil)
}

// RankWithMonitor ranks like Rank and reports each stage to monitor.
func (s *Searcher) RankWithMonitor(query string, monitor SearchMonitor) []Result {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	queryTokens := s.strategy.QueryTokens(query)
	monitor.AfterTokenize(queryTokens)
	if len(queryTokens) == 0 {
		results := []Result{}
		monitor.Finish(results)
		return results
	}

	results := make([]Result, 0)
	for i := 0; i < s.index.Len(); i++ {
		entry := s.index.Entry(i)
		score, ok := s.strategy.Score(queryTokens, entry)
		if !ok {
			monitor.Rejected(entry)
			continue
		}
		monitor.Matched(entry, score)
		results = append(results, Result{
			Record:   entry.Record.Clone(),
			Score:    score,
			Position: entry.Position,
		})
	}

	sortResults(results)
	if s.limit > 0 && len(results) > s.limit {
		results = results[:s.limit]
	}

	s.logger.Debug("search completed",
		"query", query,
		"strategy", s.strategy.Name(),
		"tokens", len(queryTokens),
		"matches", len(results))
	monitor.Finish(results)

	return results
}

// collators hands out Italian collators; a collate.Collator keeps scratch
// buffers and must not be shared between goroutines.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Italian)
	},
}

// sortResults orders by score descending, then by display name under Italian
// collation, then by dataset position.
func sortResults(results []Result) {
	col := collators.Get().(*collate.Collator)
	defer collators.Put(col)

	slices.SortFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := col.CompareString(a.Record.Name, b.Record.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})
}
