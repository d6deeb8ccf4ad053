package catalog

import "github.com/poiesic/foodsearch/core"

const (
	// RecordIDPrefix namespaces identifiers of catalog records.
	RecordIDPrefix = "bda:"

	// SourceName is the provenance written on every catalog record.
	SourceName = "BDA (bda.ieo.it)"

	// DefaultRank is the ordering weight of records built from the catalog.
	DefaultRank = 1000
)

// NewRecord builds a record for catalog item code. The name and category are
// cleaned of markup; fallbackName is used when name is empty.
func NewRecord(code, name, fallbackName, category string, per100 core.Per100) core.FoodRecord {
	display := CleanText(name)
	if display == "" {
		display = CleanText(fallbackName)
	}
	return core.FoodRecord{
		ID:       RecordIDPrefix + code,
		Name:     display,
		Aliases:  []string{},
		Category: CleanText(category),
		Per100:   per100,
		Source:   SourceName,
		Rank:     DefaultRank,
	}
}
