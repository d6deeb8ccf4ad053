package foodsearch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/foodsearch/core"
	"github.com/poiesic/foodsearch/dataset"
	"github.com/poiesic/foodsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const catalogDoc = `[
  {"id": "1", "name": "Pasta di semola", "aliases": ["spaghetti"], "per100": {"kcal": 353}},
  {"id": "2", "name": "Petto di pollo", "aliases": [], "per100": {"kcal": 100}},
  {"id": "3", "name": "Zucchine", "aliases": ["sottolio"]},
  {"id": "4", "name": "Acciughe", "aliases": ["sottolio"]}
]`

// countingSource counts reads and can hold them until release is closed.
type countingSource struct {
	dataset.Source
	reads   atomic.Int32
	release chan struct{}
}

func newCountingSource(text string) *countingSource {
	return &countingSource{Source: dataset.RawSource("test.json", text)}
}

func (s *countingSource) Read(ctx context.Context) ([]byte, error) {
	s.reads.Add(1)
	if s.release != nil {
		<-s.release
	}
	return s.Source.Read(ctx)
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }

func (failingSource) Read(context.Context) ([]byte, error) {
	return nil, core.ErrDatasetUnavailable
}

func newLoadedEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(opts...)
	require.NoError(t, err)
	_, err = e.Load(context.Background(), dataset.RawSource("test.json", catalogDoc), nil)
	require.NoError(t, err)
	return e
}

func names(records []core.FoodRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestNewEngine(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e, err := NewEngine()
		require.NoError(t, err)
		assert.False(t, e.Loaded())
		assert.Equal(t, search.ContainmentStrategyName, e.Strategy().Name())
		assert.NotNil(t, e.logger)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		e, err := NewEngine(WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, e.logger)
	})

	t.Run("nil strategy", func(t *testing.T) {
		_, err := NewEngine(WithStrategy(nil))
		assert.Equal(t, ErrStrategyRequired, err)
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := NewEngine(WithLimit(-3))
		assert.ErrorIs(t, err, search.ErrInvalidLimit)
	})
}

func TestEngine_EmptyStateFailsFast(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	_, err = e.Search("pasta")
	assert.ErrorIs(t, err, core.ErrNotLoaded)

	_, err = e.Meta()
	assert.ErrorIs(t, err, core.ErrNotLoaded)

	_, err = e.Explain("pasta", nil)
	assert.ErrorIs(t, err, core.ErrNotLoaded)
}

func TestEngine_Load(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	loadedAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	e, err := NewEngine(WithClock(func() time.Time { return loadedAt }))
	require.NoError(t, err)

	records, err := e.Load(context.Background(), dataset.RawSource("elenco_cibo_bda.json", catalogDoc), &LoadOptions{Logger: logger})
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.True(t, e.Loaded())

	meta, err := e.Meta()
	require.NoError(t, err)
	assert.Equal(t, "elenco_cibo_bda.json", meta.Source)
	assert.Equal(t, 4, meta.Items)
	assert.Equal(t, len(catalogDoc), meta.Bytes)
	assert.Equal(t, dataset.Digest([]byte(catalogDoc)), meta.Hash)
	assert.Equal(t, loadedAt, meta.Timestamp)

	line := logs.String()
	assert.Contains(t, line, "dataset loaded")
	assert.Contains(t, line, "source=elenco_cibo_bda.json")
	assert.Contains(t, line, "items=4")
	assert.Contains(t, line, "hash="+meta.Hash)
}

func TestEngine_LoadIsMemoized(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)
	src := newCountingSource(catalogDoc)

	first, err := e.Load(context.Background(), src, nil)
	require.NoError(t, err)
	second, err := e.Load(context.Background(), src, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.reads.Load())
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0])

	// A different source after LOADED still returns the cached dataset.
	other := newCountingSource(`[{"name": "Pane"}]`)
	third, err := e.Load(context.Background(), other, nil)
	require.NoError(t, err)
	assert.Same(t, &first[0], &third[0])
	assert.Equal(t, int32(0), other.reads.Load())
}

func TestEngine_ConcurrentLoadReadsSourceOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	e, err := NewEngine()
	require.NoError(t, err)
	src := newCountingSource(catalogDoc)
	src.release = make(chan struct{})

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]core.FoodRecord, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = e.Load(context.Background(), src, nil)
		}()
	}

	// Let the callers pile up behind the first read.
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.reads.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Same(t, &results[0][0], &results[i][0])
	}
}

func TestEngine_FailedLoadStaysEmpty(t *testing.T) {
	tests := []struct {
		name    string
		src     dataset.Source
		wantErr error
	}{
		{name: "empty array", src: dataset.RawSource("x", `[]`), wantErr: core.ErrDatasetFormat},
		{name: "not an array", src: dataset.RawSource("x", `{"name": "Pane"}`), wantErr: core.ErrDatasetFormat},
		{name: "invalid record", src: dataset.RawSource("x", `[{"name": ""}]`), wantErr: core.ErrDatasetFormat},
		{name: "unreadable source", src: failingSource{}, wantErr: core.ErrDatasetUnavailable},
		{name: "nil source", src: nil, wantErr: ErrSourceRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine()
			require.NoError(t, err)

			records, err := e.Load(context.Background(), tt.src, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, records)
			assert.False(t, e.Loaded())

			_, err = e.Search("pane")
			assert.ErrorIs(t, err, core.ErrNotLoaded)

			// A later good load succeeds.
			_, err = e.Load(context.Background(), dataset.RawSource("ok", catalogDoc), nil)
			require.NoError(t, err)
			assert.True(t, e.Loaded())
		})
	}
}

func TestEngine_Reset(t *testing.T) {
	e := newLoadedEngine(t)
	src := newCountingSource(`[{"name": "Pane"}]`)

	e.Reset()
	assert.False(t, e.Loaded())
	_, err := e.Meta()
	assert.ErrorIs(t, err, core.ErrNotLoaded)
	_, err = e.Search("pasta")
	assert.ErrorIs(t, err, core.ErrNotLoaded)

	// Reset on an empty engine is a no-op.
	e.Reset()

	records, err := e.Load(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pane"}, names(records))
	assert.Equal(t, int32(1), src.reads.Load())

	got, err := e.Search("pasta")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEngine_ResetDiscardsInFlightLoad(t *testing.T) {
	defer goleak.VerifyNone(t)

	e, err := NewEngine()
	require.NoError(t, err)
	stale := &countingSource{
		Source:  dataset.RawSource("stale.json", `[{"name": "Pane"}]`),
		release: make(chan struct{}),
	}
	fresh := dataset.RawSource("fresh.json", catalogDoc)

	staleDone := make(chan []core.FoodRecord)
	go func() {
		records, err := e.Load(context.Background(), stale, nil)
		assert.NoError(t, err)
		staleDone <- records
	}()
	require.Eventually(t, func() bool { return stale.reads.Load() == 1 },
		time.Second, time.Millisecond)

	e.Reset()
	records, err := e.Load(context.Background(), fresh, nil)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	close(stale.release)
	assert.Equal(t, []string{"Pane"}, names(<-staleDone))

	meta, err := e.Meta()
	require.NoError(t, err)
	assert.Equal(t, "fresh.json", meta.Source)
	got, err := e.Search("pollo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Petto di pollo"}, names(got))
}

func TestEngine_Search(t *testing.T) {
	for _, strategy := range []search.Strategy{search.ContainmentStrategy{}, search.FuzzyStrategy{}} {
		t.Run(strategy.Name(), func(t *testing.T) {
			e := newLoadedEngine(t, WithStrategy(strategy))

			got, err := e.Search("pasta")
			require.NoError(t, err)
			assert.Contains(t, names(got), "Pasta di semola")

			got, err = e.Search("pollo")
			require.NoError(t, err)
			assert.Contains(t, names(got), "Petto di pollo")

			for _, q := range []string{"xyznonexistent", "", "   ", "pasta pollo"} {
				got, err = e.Search(q)
				require.NoError(t, err)
				assert.Empty(t, got, "query %q", q)
			}

			got, err = e.Search("sottolio")
			require.NoError(t, err)
			assert.Equal(t, []string{"Acciughe", "Zucchine"}, names(got))
		})
	}
}

func TestEngine_SearchLimit(t *testing.T) {
	e := newLoadedEngine(t, WithLimit(1))
	got, err := e.Search("sottolio")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acciughe"}, names(got))
}

func TestEngine_Explain(t *testing.T) {
	e := newLoadedEngine(t)
	results, err := e.Explain("pasta semola", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].Record.ID)
	assert.Equal(t, 4.0, results[0].Score)
}

func TestEngine_LoadHonoursCancelledContext(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := t.TempDir() + "/" + dataset.DefaultSourceName
	_, err = e.Load(ctx, dataset.FileSource(path), nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, e.Loaded())
}
