package foodsearch

import "errors"

var (
	// ErrSourceRequired is returned when Load is called without a source.
	ErrSourceRequired = errors.New("dataset source required")

	// ErrStrategyRequired is returned when WithStrategy receives nil.
	ErrStrategyRequired = errors.New("ranking strategy required")
)
