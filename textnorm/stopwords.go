package textnorm

// StopwordsVersion identifies the revision of ItalianStopwords. Bump it
// whenever the table changes; tests pin the exact contents per version.
const StopwordsVersion = "it-1"

// ItalianStopwords is the closed set of articles, articulated prepositions,
// prepositions and conjunctions ignored by stopword-aware matching.
// Entries are already normalized (elided forms such as "dell'" appear as "dell").
var ItalianStopwords = map[string]struct{}{
	"a": {}, "ad": {}, "al": {}, "allo": {}, "ai": {}, "agli": {}, "all": {}, "agl": {}, "alla": {}, "alle": {},
	"da": {}, "dal": {}, "dallo": {}, "dai": {}, "dagli": {}, "dall": {}, "dalla": {}, "dalle": {},
	"di": {}, "del": {}, "dello": {}, "dei": {}, "degli": {}, "dell": {}, "della": {}, "delle": {},
	"in": {}, "nel": {}, "nello": {}, "nei": {}, "negli": {}, "nell": {}, "nella": {}, "nelle": {},
	"con": {}, "su": {}, "per": {}, "tra": {}, "fra": {},
	"e": {}, "ed": {}, "o": {}, "od": {},
}

// IsStopword reports whether token is in ItalianStopwords.
// The token must already be normalized.
func IsStopword(token string) bool {
	_, ok := ItalianStopwords[token]
	return ok
}
