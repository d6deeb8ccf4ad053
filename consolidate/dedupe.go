package consolidate

import (
	"slices"
	"unicode/utf8"

	"github.com/poiesic/foodsearch/core"
)

// DedupeEntries merges entries that share a ConsolidationKey.
//
// Entries are visited in input order and the first one per key is kept. A
// later entry with a strictly shorter name replaces the kept record as
// primary; the demoted name and its aliases become aliases of the new
// primary. Otherwise the later entry's name is added as an alias. Aliases are
// never duplicated and never equal the primary's name or its canonical form.
// The output lists one record per key in order of first appearance. The
// input is not modified.
func DedupeEntries(entries []core.FoodRecord) []core.FoodRecord {
	positions := make(map[ConsolidationKey]int, len(entries))
	out := make([]core.FoodRecord, 0, len(entries))

	for _, entry := range entries {
		key := KeyFor(entry)
		pos, seen := positions[key]
		if !seen {
			positions[key] = len(out)
			kept := entry.Clone()
			kept.Aliases = mergeAliases(kept.Name, kept.Aliases)
			out = append(out, kept)
			continue
		}

		kept := &out[pos]
		if utf8.RuneCountInString(entry.Name) < utf8.RuneCountInString(kept.Name) {
			primary := entry.Clone()
			folded := append(slices.Clone(primary.Aliases), kept.Name)
			folded = append(folded, kept.Aliases...)
			primary.Aliases = mergeAliases(primary.Name, folded)
			out[pos] = primary
			continue
		}

		if entry.Name != kept.Name &&
			entry.Name != CanonicalMergeName(kept.Name) &&
			!slices.Contains(kept.Aliases, entry.Name) {
			kept.Aliases = append(kept.Aliases, entry.Name)
		}
	}
	return out
}

// mergeAliases deduplicates aliases in first-seen order, dropping the
// primary name and its canonical form.
func mergeAliases(primary string, aliases []string) []string {
	canonical := CanonicalMergeName(primary)
	out := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if alias == "" || alias == primary || alias == canonical || slices.Contains(out, alias) {
			continue
		}
		out = append(out, alias)
	}
	return out
}
