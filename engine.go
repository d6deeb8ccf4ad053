// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package foodsearch

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/foodsearch/core"
	"github.com/poiesic/foodsearch/dataset"
	"github.com/poiesic/foodsearch/search"
	"golang.org/x/sync/singleflight"
)

// Engine owns one cached dataset and its search index.
//
// An Engine starts EMPTY. Load moves it to LOADED; Reset moves it back.
// Search and Meta fail with core.ErrNotLoaded while EMPTY. Once loaded the
// state is immutable, so any number of goroutines may search concurrently.
type Engine struct {
	state    atomic.Pointer[loadedState]
	loads    singleflight.Group
	mu       sync.Mutex // guards gen and publishing to state
	gen      uint64     // bumped by Reset
	strategy search.Strategy
	limit    int
	logger   *slog.Logger
	now      func() time.Time
}

type loadedState struct {
	records  []core.FoodRecord
	meta     core.Meta
	searcher *search.Searcher
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithStrategy sets the ranking strategy used by Search.
// Default is search.ContainmentStrategy.
func WithStrategy(strategy search.Strategy) Option {
	return func(e *Engine) error {
		if strategy == nil {
			return ErrStrategyRequired
		}
		e.strategy = strategy
		return nil
	}
}

// WithLimit caps the number of results returned by Search. Zero means no limit.
func WithLimit(limit int) Option {
	return func(e *Engine) error {
		if limit < 0 {
			return search.ErrInvalidLimit
		}
		e.limit = limit
		return nil
	}
}

// WithClock overrides the clock used to timestamp loads.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		if now != nil {
			e.now = now
		}
		return nil
	}
}

// NewEngine creates an EMPTY engine.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		strategy: search.ContainmentStrategy{},
		logger:   slog.Default(),
		now:      time.Now,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// LoadOptions tunes a single Load call.
type LoadOptions struct {
	// Logger receives the audit line for this load. Defaults to the engine logger.
	Logger *slog.Logger
}

// Load reads, validates and indexes the dataset from src.
//
// Once the engine is LOADED, Load returns the cached records without touching
// src. Concurrent calls share one in-flight load. On failure nothing is
// cached and the engine stays EMPTY. A load that Reset overtakes still returns
// its records to its callers but is never published. The returned slice is
// shared with the engine and must not be modified.
func (e *Engine) Load(ctx context.Context, src dataset.Source, opts *LoadOptions) ([]core.FoodRecord, error) {
	if st := e.state.Load(); st != nil {
		return st.records, nil
	}
	if src == nil {
		return nil, ErrSourceRequired
	}

	logger := e.logger
	if opts != nil && opts.Logger != nil {
		logger = opts.Logger
	}

	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()

	v, err, _ := e.loads.Do("load:"+strconv.FormatUint(gen, 10), func() (any, error) {
		if st := e.state.Load(); st != nil {
			return st, nil
		}
		st, err := e.build(ctx, src)
		if err != nil {
			logger.Error("dataset load failed", "source", src.Name(), "err", err)
			return nil, err
		}
		e.mu.Lock()
		if e.gen != gen {
			e.mu.Unlock()
			logger.Debug("dataset load superseded by reset", "source", st.meta.Source)
			return st, nil
		}
		e.state.Store(st)
		e.mu.Unlock()
		logger.Info("dataset loaded",
			"source", st.meta.Source,
			"items", st.meta.Items,
			"bytes", st.meta.Bytes,
			"hash", st.meta.Hash,
			"timestamp", st.meta.Timestamp.Format(time.RFC3339Nano))
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*loadedState).records, nil
}

func (e *Engine) build(ctx context.Context, src dataset.Source) (*loadedState, error) {
	data, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	records, err := dataset.Decode(data)
	if err != nil {
		return nil, err
	}

	searcher, err := search.NewSearcher(search.NewIndex(records),
		search.WithStrategy(e.strategy),
		search.WithLimit(e.limit),
		search.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}

	return &loadedState{
		records:  records,
		meta:     dataset.Describe(src.Name(), data, len(records), e.now()),
		searcher: searcher,
	}, nil
}

// Loaded reports whether the engine is LOADED.
func (e *Engine) Loaded() bool {
	return e.state.Load() != nil
}

// Meta returns the audit metadata of the loaded dataset.
func (e *Engine) Meta() (core.Meta, error) {
	st := e.state.Load()
	if st == nil {
		return core.Meta{}, core.ErrNotLoaded
	}
	return st.meta, nil
}

// Search returns the records matching query in rank order. A query with no
// usable tokens, or one nothing matches, yields an empty slice.
func (e *Engine) Search(query string) ([]core.FoodRecord, error) {
	st := e.state.Load()
	if st == nil {
		return nil, core.ErrNotLoaded
	}
	return st.searcher.Search(query), nil
}

// Explain is Search with scores, reporting each stage to monitor when it is
// not nil.
func (e *Engine) Explain(query string, monitor search.SearchMonitor) ([]search.Result, error) {
	st := e.state.Load()
	if st == nil {
		return nil, core.ErrNotLoaded
	}
	return st.searcher.RankWithMonitor(query, monitor), nil
}

// Strategy returns the ranking strategy used by Search.
func (e *Engine) Strategy() search.Strategy {
	return e.strategy
}

// Reset discards the dataset, index and metadata and returns the engine to
// EMPTY. A Load already in flight is not cancelled, but its result is
// discarded; the next Load reads its own source.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	if e.state.Swap(nil) != nil {
		e.logger.Debug("dataset cache reset")
	}
}
