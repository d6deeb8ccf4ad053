// Package catalog models the remote food composition catalog that feeds
// consolidation.
//
// Network access lives behind the Lister, Pager and Fetcher interfaces; this
// package only supplies adapters around them and the parsing helpers that
// turn catalog markup and composition tables into core records.
package catalog
