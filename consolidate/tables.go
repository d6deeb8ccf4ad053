package consolidate

// TablesVersion identifies the revision of the merge lookup tables below.
// Bump it whenever a table changes; consolidated datasets built with
// different versions are not comparable.
const TablesVersion = "merge-2"

// MergeStopwords are grammatical words ignored when comparing names.
var MergeStopwords = map[string]struct{}{
	"di": {}, "del": {}, "della": {}, "dello": {}, "dei": {}, "delle": {},
	"al": {}, "alla": {}, "alle": {},
	"con": {}, "senza": {},
}

// MergeDescriptors are state, freshness and origin adjectives that do not
// distinguish one food from another.
var MergeDescriptors = map[string]struct{}{
	"crudo": {}, "cruda": {},
	"fresco": {}, "fresca": {}, "freschi": {}, "fresche": {},
	"pastorizzato": {}, "pastorizzata": {},
	"biologico": {}, "biologica": {},
	"nostrano": {}, "nostrana": {},
	"intero": {}, "intera": {},
}

// SteamedMarker replaces every "cotto/cotta al vapore" phrase.
const SteamedMarker = "vapore"

// PhraseRule rewrites a run of normalized tokens. An empty Replacement drops
// the phrase.
type PhraseRule struct {
	Tokens      []string
	Replacement string
}

// MergePhrases are applied left to right before single-word filtering.
// At each position the first matching rule wins.
var MergePhrases = []PhraseRule{
	{Tokens: []string{"cotto", "al", "vapore"}, Replacement: SteamedMarker},
	{Tokens: []string{"cotta", "al", "vapore"}, Replacement: SteamedMarker},
	{Tokens: []string{"semola", "di", "grano", "duro"}},
}
