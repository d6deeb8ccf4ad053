package consolidate

import "github.com/poiesic/foodsearch/core"

// ConsolidationKey groups candidate duplicates: same canonical merge-name and
// same nutrient signature. It exists only while a dataset is being built.
type ConsolidationKey struct {
	Name      string
	Signature string
}

// KeyFor returns the consolidation key of record.
func KeyFor(record core.FoodRecord) ConsolidationKey {
	return ConsolidationKey{
		Name:      CanonicalMergeName(record.Name),
		Signature: record.Per100.Signature(),
	}
}

func (k ConsolidationKey) String() string {
	return k.Name + "|" + k.Signature
}
