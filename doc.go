// Package foodsearch is a typo-tolerant, diacritic-insensitive search engine
// for a small Italian food catalog.
//
// An Engine loads a dataset once, builds an in-memory token index and answers
// free-text queries against it:
//
//	engine, err := foodsearch.NewEngine(foodsearch.WithStrategy(search.FuzzyStrategy{}))
//	if err != nil {
//		return err
//	}
//	if _, err := engine.Load(ctx, dataset.FileSource("elenco_cibo_bda.json"), nil); err != nil {
//		return err
//	}
//	records, err := engine.Search("petto di pollo")
//
// Duplicate catalog entries are merged offline by package consolidate.
package foodsearch
