package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/poiesic/foodsearch/core"
)

// Item is one row of the remote catalog list.
type Item struct {
	Code string
	Name string
	// Revision identifies the content behind Code when the source can tell,
	// e.g. a hash of an exported entry. Empty when unknown.
	Revision string
}

// CacheKey is the key under which the fetched record may be cached. Items
// whose content changed get a different key.
func (i Item) CacheKey() string {
	if i.Revision == "" {
		return i.Code
	}
	return i.Code + "@" + i.Revision
}

// Lister returns every item of the remote catalog, each code once.
type Lister interface {
	List(ctx context.Context) ([]Item, error)
}

// Fetcher retrieves the full record for one catalog item.
type Fetcher interface {
	Fetch(ctx context.Context, item Item) (core.FoodRecord, error)
}

// ListerFunc adapts a function to Lister.
type ListerFunc func(ctx context.Context) ([]Item, error)

func (f ListerFunc) List(ctx context.Context) ([]Item, error) { return f(ctx) }

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, item Item) (core.FoodRecord, error)

func (f FetcherFunc) Fetch(ctx context.Context, item Item) (core.FoodRecord, error) {
	return f(ctx, item)
}

// StaticLister serves a fixed item list, for exports already on disk.
type StaticLister []Item

func (l StaticLister) List(_ context.Context) ([]Item, error) {
	if len(l) == 0 {
		return nil, ErrEmptyCatalog
	}
	return append([]Item(nil), l...), nil
}

// WithFallback returns a Fetcher that asks fallback when primary fails.
// Context cancellation is never retried through the fallback.
func WithFallback(primary, fallback Fetcher) Fetcher {
	return FetcherFunc(func(ctx context.Context, item Item) (core.FoodRecord, error) {
		rec, err := primary.Fetch(ctx, item)
		if err == nil {
			return rec, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return core.FoodRecord{}, err
		}
		rec, fbErr := fallback.Fetch(ctx, item)
		if fbErr != nil {
			return core.FoodRecord{}, fmt.Errorf("item %s: %w (fallback: %w)", item.Code, err, fbErr)
		}
		return rec, nil
	})
}
