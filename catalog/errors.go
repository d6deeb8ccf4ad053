package catalog

import "errors"

var (
	// ErrEmptyCatalog is returned when the catalog list has no items.
	ErrEmptyCatalog = errors.New("catalog list is empty")

	// ErrPagerRequired is returned when a paged lister is created without a pager.
	ErrPagerRequired = errors.New("pager required")

	// ErrInvalidExport is returned when a catalog export cannot be read.
	ErrInvalidExport = errors.New("invalid catalog export")

	// ErrUnknownItem is returned when a fetcher has no data for an item.
	ErrUnknownItem = errors.New("unknown catalog item")

	// ErrIncompleteEntry is returned for export entries scraped without a
	// composition table.
	ErrIncompleteEntry = errors.New("catalog entry has no composition table")
)
