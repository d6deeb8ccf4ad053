package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/poiesic/foodsearch/core"
)

// ExportEntry is one scraped catalog item: the list row plus the raw
// composition table of its detail page.
type ExportEntry struct {
	Code     string           `json:"code"`
	ListName string           `json:"list_name"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Groups   []ComponentGroup `json:"composition"`
}

// ReadExport decodes a JSON array of ExportEntry.
func ReadExport(data []byte) ([]ExportEntry, error) {
	var entries []ExportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, e := range entries {
		if e.Code == "" {
			return nil, fmt.Errorf("%w: entry %d has no code", ErrInvalidExport, i)
		}
	}
	return entries, nil
}

// ExportCatalog serves a scraped export. Each entry becomes a record through
// ExtractMacros and NewRecord; entries without a composition table fail
// with ErrIncompleteEntry.
func ExportCatalog(entries []ExportEntry) (StaticLister, Fetcher) {
	items := make(StaticLister, len(entries))
	byKey := make(map[string]ExportEntry, len(entries))
	for i, e := range entries {
		items[i] = Item{Code: e.Code, Name: e.ListName, Revision: revision(e)}
		byKey[items[i].CacheKey()] = e
	}
	fetcher := FetcherFunc(func(ctx context.Context, item Item) (core.FoodRecord, error) {
		if err := ctx.Err(); err != nil {
			return core.FoodRecord{}, err
		}
		e, ok := byKey[item.CacheKey()]
		if !ok {
			return core.FoodRecord{}, fmt.Errorf("%w: %s", ErrUnknownItem, item.Code)
		}
		if len(e.Groups) == 0 {
			return core.FoodRecord{}, fmt.Errorf("%w: %s", ErrIncompleteEntry, item.Code)
		}
		return NewRecord(e.Code, e.Name, e.ListName, e.Category, ExtractMacros(e.Groups)), nil
	})
	return items, fetcher
}

// RecordCatalog serves records already in dataset form, keyed by record ID.
func RecordCatalog(records []core.FoodRecord) (StaticLister, Fetcher) {
	items := make(StaticLister, len(records))
	byKey := make(map[string]core.FoodRecord, len(records))
	for i, rec := range records {
		items[i] = Item{Code: rec.ID, Name: rec.Name, Revision: revision(rec)}
		byKey[items[i].CacheKey()] = rec
	}
	fetcher := FetcherFunc(func(ctx context.Context, item Item) (core.FoodRecord, error) {
		if err := ctx.Err(); err != nil {
			return core.FoodRecord{}, err
		}
		rec, ok := byKey[item.CacheKey()]
		if !ok {
			return core.FoodRecord{}, fmt.Errorf("%w: %s", ErrUnknownItem, item.Code)
		}
		return rec.Clone(), nil
	})
	return items, fetcher
}

// RecordLookup fetches catalog items from an earlier dataset by their
// RecordIDPrefix identifier. Use it as the fallback of WithFallback.
func RecordLookup(records []core.FoodRecord) Fetcher {
	byID := make(map[string]core.FoodRecord, len(records))
	for _, rec := range records {
		if _, dup := byID[rec.ID]; !dup {
			byID[rec.ID] = rec
		}
	}
	return FetcherFunc(func(ctx context.Context, item Item) (core.FoodRecord, error) {
		if err := ctx.Err(); err != nil {
			return core.FoodRecord{}, err
		}
		rec, ok := byID[RecordIDPrefix+item.Code]
		if !ok {
			return core.FoodRecord{}, fmt.Errorf("%w: %s", ErrUnknownItem, item.Code)
		}
		return rec.Clone(), nil
	})
}

// revision fingerprints v so edited content never shares a cache key.
func revision(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", uint64(core.IDFromContent(string(data))))
}
