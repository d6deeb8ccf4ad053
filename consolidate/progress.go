package consolidate

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many catalog items have been fetched.
// It is safe for use by concurrent workers.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	current        int
	cached         int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress lines (typically os.Stderr); nil discards them
// total: number of catalog items to fetch
// reportInterval: report every N items
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.cached = 0
	p.lastReported = 0
}

// Done records one finished item; fromCache marks items served by the cache.
func (p *ProgressTracker) Done(fromCache bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.current >= p.total {
		return
	}

	p.current++
	if fromCache {
		p.cached++
	}

	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish prints the final line unless it was just printed.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	if p.lastReported != p.current || p.current == 0 {
		p.report()
		p.lastReported = p.current
	}
}

// Counts returns finished and cache-served item counts.
func (p *ProgressTracker) Counts() (done, cached int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.cached
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.current) / elapsed
	}
	fmt.Fprintf(p.writer, "progress %d/%d (%d cached) - %.1f items/s\n",
		p.current, p.total, p.cached, rate)
}
