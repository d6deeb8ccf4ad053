package search

// SearchMonitor provides hooks to observe the ranking process.
// Implement this interface to trace how a query was tokenized and why each
// candidate was kept or dropped. Entries passed to the hooks are read-only.
type SearchMonitor interface {
	Start(query string)
	AfterTokenize(tokens []string)
	Matched(entry *IndexedEntry, score float64)
	Rejected(entry *IndexedEntry)
	Finish(results []Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                     {}
func (n *noopMonitor) AfterTokenize(_ []string)           {}
func (n *noopMonitor) Matched(_ *IndexedEntry, _ float64) {}
func (n *noopMonitor) Rejected(_ *IndexedEntry)           {}
func (n *noopMonitor) Finish(_ []Result)                  {}
