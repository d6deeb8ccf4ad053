package consolidate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/foodsearch/catalog"
	"github.com/poiesic/foodsearch/core"
	"github.com/poiesic/foodsearch/dataset"
	"github.com/poiesic/foodsearch/storage"
	"golang.org/x/time/rate"
)

// Builder produces a consolidated dataset from the remote catalog.
//
// Items are fetched by a bounded worker pool, optionally rate limited and
// served from an EntryCache. Each fetched record is stored at its item's
// index, so the consolidated output depends only on the list order and
// never on completion order.
type Builder struct {
	lister      catalog.Lister
	fetcher     catalog.Fetcher
	cache       storage.EntryCache
	checkpoints storage.CheckpointRepository
	config      *Config
	progress    io.Writer
	logger      *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// WithConfig replaces the default configuration.
func WithConfig(config *Config) Option {
	return func(b *Builder) error {
		if config == nil {
			config = DefaultConfig()
		}
		if err := config.Validate(); err != nil {
			return err
		}
		b.config = config
		return nil
	}
}

// WithEntryCache reuses records fetched by earlier runs and stores new ones.
func WithEntryCache(cache storage.EntryCache) Option {
	return func(b *Builder) error {
		b.cache = cache
		return nil
	}
}

// WithCheckpoints records every completed build.
func WithCheckpoints(repo storage.CheckpointRepository) Option {
	return func(b *Builder) error {
		b.checkpoints = repo
		return nil
	}
}

// WithProgress sets where progress lines are written. Default discards them.
func WithProgress(w io.Writer) Option {
	return func(b *Builder) error {
		b.progress = w
		return nil
	}
}

// NewBuilder creates a new builder.
func NewBuilder(lister catalog.Lister, fetcher catalog.Fetcher, opts ...Option) (*Builder, error) {
	if lister == nil {
		return nil, ErrListerRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}

	b := &Builder{
		lister:   lister,
		fetcher:  fetcher,
		config:   DefaultConfig(),
		progress: io.Discard,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Result is the outcome of a build.
type Result struct {
	// Records is the consolidated dataset.
	Records []core.FoodRecord
	// Listed is the number of catalog items.
	Listed int
	// Cached is the number of items served by the entry cache.
	Cached int
	// Digest is the hex SHA-256 of the encoded dataset.
	Digest  string
	Summary Summary
	Elapsed time.Duration
}

// Run lists the catalog, fetches every item and merges duplicates.
// If any item fails the build fails with the error of the first failing item
// in list order, and no dataset is produced.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	items, err := b.lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}

	b.logger.Info("consolidation started",
		"items", len(items),
		"workers", b.config.Workers,
		"tables", TablesVersion)

	tracker := NewProgressTracker(b.progress, len(items), b.config.ReportInterval)
	tracker.Start()

	entries, err := b.fetchAll(ctx, items, tracker)
	if err != nil {
		return nil, err
	}
	tracker.Finish()

	records := DedupeEntries(entries)

	var buf bytes.Buffer
	if err := dataset.Encode(&buf, records); err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}

	_, cached := tracker.Counts()
	result := &Result{
		Records: records,
		Listed:  len(items),
		Cached:  cached,
		Digest:  dataset.Digest(buf.Bytes()),
		Summary: Summarize(records),
		Elapsed: tracker.Elapsed(),
	}

	if b.checkpoints != nil {
		checkpoint := &core.Checkpoint{
			Name:   b.config.CheckpointName,
			Items:  len(records),
			Digest: result.Digest,
		}
		if err := b.checkpoints.SaveCheckpoint(ctx, checkpoint); err != nil {
			b.logger.Warn("failed to save checkpoint", "name", checkpoint.Name, "err", err)
		}
	}

	b.logger.Info("consolidation complete",
		"listed", result.Listed,
		"cached", result.Cached,
		"records", len(records),
		"merged", len(entries)-len(records),
		"elapsed", result.Elapsed.Round(time.Millisecond))

	return result, nil
}

func (b *Builder) fetchAll(ctx context.Context, items []catalog.Item, tracker *ProgressTracker) ([]core.FoodRecord, error) {
	pool, err := ants.NewPool(b.config.Workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var limiter *rate.Limiter
	if b.config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(b.config.RequestsPerSecond), b.config.Burst)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := make([]core.FoodRecord, len(items))
	errs := make([]error, len(items))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			rec, fromCache, err := b.fetchOne(runCtx, item, limiter)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			entries[i] = rec
			tracker.Done(fromCache)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
			cancel()
			break
		}
	}
	wg.Wait()

	if err := firstFailure(ctx, items, errs); err != nil {
		return nil, err
	}
	return entries, nil
}

// firstFailure returns the error of the first failed item in list order.
// Items aborted only because another item failed are skipped.
func firstFailure(ctx context.Context, items []catalog.Item, errs []error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var aborted error
	for i, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) {
			if aborted == nil {
				aborted = err
			}
			continue
		}
		return fmt.Errorf("%w: %s (%s): %w", ErrItemFailed, items[i].Code, items[i].Name, err)
	}
	return aborted
}

func (b *Builder) fetchOne(ctx context.Context, item catalog.Item, limiter *rate.Limiter) (core.FoodRecord, bool, error) {
	if b.cache != nil {
		rec, err := b.cache.GetEntry(ctx, item.CacheKey())
		if err == nil {
			return *rec, true, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			b.logger.Warn("entry cache lookup failed", "key", item.CacheKey(), "err", err)
		}
	}

	var rec core.FoodRecord
	err := RetryWithBackoff(ctx, func() error {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return Permanent(err)
			}
		}
		var err error
		rec, err = b.fetcher.Fetch(ctx, item)
		if err != nil {
			return err
		}
		if err := core.ValidateFoodRecord(&rec); err != nil {
			return Permanent(err)
		}
		return nil
	}, b.config.MaxAttempts, b.config.RetryDelay)
	if err != nil {
		return core.FoodRecord{}, false, err
	}

	if rec.Aliases == nil {
		rec.Aliases = []string{}
	}

	if b.cache != nil {
		if err := b.cache.PutEntry(ctx, item.CacheKey(), &rec); err != nil {
			b.logger.Warn("entry cache store failed", "key", item.CacheKey(), "err", err)
		}
	}
	return rec, false, nil
}
