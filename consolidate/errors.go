package consolidate

import "errors"

var (
	// ErrListerRequired is returned when a builder is created without a catalog lister.
	ErrListerRequired = errors.New("catalog lister required")

	// ErrFetcherRequired is returned when a builder is created without a catalog fetcher.
	ErrFetcherRequired = errors.New("catalog fetcher required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidConfig is returned when builder configuration is invalid.
	ErrInvalidConfig = errors.New("invalid consolidation config")

	// ErrItemFailed wraps the failure of a single catalog item.
	ErrItemFailed = errors.New("catalog item failed")
)
