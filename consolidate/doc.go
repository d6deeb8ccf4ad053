// Package consolidate turns a scraped food catalog into a deduplicated dataset.
//
// Two catalog entries are duplicates when they share a ConsolidationKey: the
// same canonical merge-name (see CanonicalMergeName) and the same nutrient
// signature. DedupeEntries folds each group into one record whose name is the
// shortest display name seen and whose aliases collect the others.
//
// Builder drives the whole build. It lists the catalog, fetches every item
// through a bounded worker pool with retries and optional rate limiting,
// merges duplicates and reports a Summary:
//
//	builder, err := consolidate.NewBuilder(lister, fetcher,
//		consolidate.WithEntryCache(cache),
//		consolidate.WithProgress(os.Stderr))
//	if err != nil {
//		return err
//	}
//	result, err := builder.Run(ctx)
//
// The merge tables are versioned by TablesVersion.
package consolidate
