package catalog

import (
	"strings"

	"github.com/poiesic/foodsearch/core"
)

// Component is one row of a food's composition table.
type Component struct {
	Label string `json:"label"`
	Unit  string `json:"unit"`
	Value string `json:"value"`
}

// ComponentGroup is a section of the composition table.
type ComponentGroup struct {
	Components []Component `json:"components"`
}

// Composition table labels mapped onto core.Per100.
const (
	EnergyLabel  = "energia, ric con fibra"
	EnergyUnit   = "kcal"
	ProteinLabel = "proteine totali"
	CarbsLabel   = "carboidrati disponibili"
	FatLabel     = "lipidi totali"
	FiberLabel   = "fibra alimentare totale"
)

// ExtractMacros picks the five macro values out of a composition table.
// Energy must match its label exactly and be expressed in kcal; the other
// labels match by prefix. The first value found for each field wins.
func ExtractMacros(groups []ComponentGroup) core.Per100 {
	var out core.Per100
	for _, group := range groups {
		for _, c := range group.Components {
			label := strings.ToLower(CleanText(c.Label))
			unit := strings.ToLower(CleanText(c.Unit))

			var slot **float64
			switch {
			case label == EnergyLabel && unit == EnergyUnit:
				slot = &out.Kcal
			case strings.HasPrefix(label, ProteinLabel):
				slot = &out.Protein
			case strings.HasPrefix(label, CarbsLabel):
				slot = &out.Carbs
			case strings.HasPrefix(label, FatLabel):
				slot = &out.Fat
			case strings.HasPrefix(label, FiberLabel):
				slot = &out.Fiber
			default:
				continue
			}
			if *slot == nil {
				*slot = ParseNumber(c.Value)
			}
		}
	}
	return out
}
