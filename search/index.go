package search

import (
	"github.com/poiesic/foodsearch/core"
	"github.com/poiesic/foodsearch/textnorm"
)

// IndexedEntry is the token view of one record.
type IndexedEntry struct {
	// Position is the record's index in the dataset.
	Position int
	Record   core.FoodRecord
	// Tokens is the union of name and alias tokens in first-seen order.
	Tokens []string
	// ContentTokens is Tokens without stopwords.
	ContentTokens []string
}

// Index is an immutable, in-memory token index over a dataset. It is built
// once and only read afterwards, so concurrent searches need no locking.
type Index struct {
	entries []IndexedEntry
}

// NewIndex tokenizes every record's name and aliases.
// Records are copied; later changes to the input do not affect the index.
func NewIndex(records []core.FoodRecord) *Index {
	entries := make([]IndexedEntry, len(records))
	for i, rec := range records {
		tokens := textnorm.Tokenize(rec.Name, false)
		for _, alias := range rec.Aliases {
			tokens = append(tokens, textnorm.Tokenize(alias, false)...)
		}
		tokens = textnorm.Unique(tokens)

		content := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if !textnorm.IsStopword(t) {
				content = append(content, t)
			}
		}

		entries[i] = IndexedEntry{
			Position:      i,
			Record:        rec.Clone(),
			Tokens:        tokens,
			ContentTokens: content,
		}
	}
	return &Index{entries: entries}
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Entry returns the entry at position i.
func (ix *Index) Entry(i int) *IndexedEntry {
	return &ix.entries[i]
}
