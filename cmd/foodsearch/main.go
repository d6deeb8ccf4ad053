// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/poiesic/foodsearch"
	"github.com/poiesic/foodsearch/catalog"
	"github.com/poiesic/foodsearch/config"
	"github.com/poiesic/foodsearch/consolidate"
	"github.com/poiesic/foodsearch/core"
	"github.com/poiesic/foodsearch/dataset"
	"github.com/poiesic/foodsearch/search"
	"github.com/poiesic/foodsearch/storage/badger"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

const (
	formatDataset = "dataset"
	formatExport  = "export"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "foodsearch",
		Usage: "Search and consolidate an Italian food composition catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank dataset entries against a free-text query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the dataset JSON file",
					},
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Ranking strategy (containment, fuzzy)",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (0 for all)",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print scores and rejected candidates",
					},
				},
			},
			{
				Name:   "meta",
				Usage:  "Load the dataset and print its audit metadata",
				Action: metaCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the dataset JSON file",
					},
				},
			},
			{
				Name:   "consolidate",
				Usage:  "Merge duplicate entries of a scraped catalog export",
				Action: consolidateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Scraped catalog as a JSON array",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Input format: dataset (records) or export (list rows with composition tables)",
						Value:   formatDataset,
					},
					&cli.StringFlag{
						Name:  "fallback",
						Usage: "Earlier dataset consulted for export entries missing their composition table",
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Where to write the consolidated dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "BadgerDB directory for the fetch cache and checkpoints",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent fetches",
					},
				},
			},
		},
	}
}

// setup loads the configuration file and installs the default logger.
func setup(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	return setupLogger(c.App.ErrWriter, cfg.Log.Level)
}

func setupLogger(w io.Writer, levelStr string) error {
	levelStr = strings.ToLower(levelStr)

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	if w == nil {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func datasetPath(c *cli.Context) string {
	if c.IsSet("db") {
		return c.String("db")
	}
	return appConfig(c).Dataset.Path
}

func loadEngine(c *cli.Context, opts ...foodsearch.Option) (*foodsearch.Engine, error) {
	engine, err := foodsearch.NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	if _, err := engine.Load(c.Context, dataset.FileSource(datasetPath(c)), nil); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return engine, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("a query is required")
	}

	cfg := appConfig(c)
	strategyName := cfg.Search.Strategy
	if c.IsSet("strategy") {
		strategyName = c.String("strategy")
	}
	strategy, err := search.StrategyByName(strategyName)
	if err != nil {
		return err
	}
	limit := cfg.Search.Limit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}

	engine, err := loadEngine(c, foodsearch.WithStrategy(strategy), foodsearch.WithLimit(limit))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if c.Bool("explain") {
		monitor := &explainMonitor{w: out}
		_, err := engine.Explain(query, monitor)
		return err
	}

	records, err := engine.Search(query)
	if err != nil {
		return err
	}
	for _, rec := range records {
		fmt.Fprintln(out, formatRecord(rec))
	}
	return nil
}

func formatRecord(rec core.FoodRecord) string {
	var b strings.Builder
	b.WriteString(rec.Name)
	if len(rec.Aliases) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(rec.Aliases, "; "))
		b.WriteString(")")
	}
	if rec.Per100.Kcal != nil {
		b.WriteString(" - ")
		b.WriteString(strconv.FormatFloat(*rec.Per100.Kcal, 'f', -1, 64))
		b.WriteString(" kcal/100g")
	}
	return b.String()
}

// explainMonitor prints each ranking stage as it happens.
type explainMonitor struct {
	w        io.Writer
	rejected int
}

var _ search.SearchMonitor = (*explainMonitor)(nil)

func (m *explainMonitor) Start(query string) {
	fmt.Fprintf(m.w, "query: %q\n", query)
}

func (m *explainMonitor) AfterTokenize(tokens []string) {
	fmt.Fprintf(m.w, "tokens: %s\n", strings.Join(tokens, " "))
}

func (m *explainMonitor) Matched(_ *search.IndexedEntry, _ float64) {}

func (m *explainMonitor) Rejected(_ *search.IndexedEntry) {
	m.rejected++
}

func (m *explainMonitor) Finish(results []search.Result) {
	for _, r := range results {
		fmt.Fprintf(m.w, "%6.3f  %s\n", r.Score, formatRecord(r.Record))
	}
	fmt.Fprintf(m.w, "%d matched, %d rejected\n", len(results), m.rejected)
}

func metaCommand(c *cli.Context) error {
	engine, err := loadEngine(c)
	if err != nil {
		return err
	}
	meta, err := engine.Meta()
	if err != nil {
		return err
	}
	out := c.App.Writer
	fmt.Fprintf(out, "source:    %s\n", meta.Source)
	fmt.Fprintf(out, "items:     %d\n", meta.Items)
	fmt.Fprintf(out, "bytes:     %d\n", meta.Bytes)
	fmt.Fprintf(out, "sha256:    %s\n", meta.Hash)
	fmt.Fprintf(out, "loaded at: %s\n", meta.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"))
	return nil
}

func consolidateCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	inputPath := c.String("input")
	lister, fetcher, err := openCatalog(ctx, c.String("format"), inputPath, c.String("fallback"))
	if err != nil {
		return err
	}

	cfg := appConfig(c)
	builderConfig := cfg.Consolidate.Builder()
	if c.IsSet("workers") {
		builderConfig.Workers = c.Int("workers")
	}

	opts := []consolidate.Option{
		consolidate.WithConfig(builderConfig),
		consolidate.WithProgress(c.App.ErrWriter),
	}

	cacheDir := cfg.Consolidate.CacheDir
	if c.IsSet("cache") {
		cacheDir = c.String("cache")
	}
	if cacheDir != "" {
		backend, err := badger.OpenBackend(cacheDir, false)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer backend.Close()
		opts = append(opts,
			consolidate.WithEntryCache(badger.NewEntryRepository(backend)),
			consolidate.WithCheckpoints(badger.NewCheckpointRepository(backend)))
	}

	builder, err := consolidate.NewBuilder(lister, fetcher, opts...)
	if err != nil {
		return err
	}
	result, err := builder.Run(ctx)
	if err != nil {
		return fmt.Errorf("consolidation failed: %w", err)
	}
	result.Summary.Log(slog.Default())

	outputPath := c.String("output")
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	if err := dataset.Encode(f, result.Records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "%d entries consolidated into %d records (%s)\n",
		result.Listed, len(result.Records), outputPath)
	return nil
}

// openCatalog reads the consolidate input in the given format.
func openCatalog(ctx context.Context, format, inputPath, fallbackPath string) (catalog.Lister, catalog.Fetcher, error) {
	raw, err := dataset.FileSource(inputPath).Read(ctx)
	if err != nil {
		return nil, nil, err
	}
	switch format {
	case formatDataset:
		if fallbackPath != "" {
			return nil, nil, errors.New("--fallback requires --format export")
		}
		records, err := dataset.Decode(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
		}
		lister, fetcher := catalog.RecordCatalog(records)
		return lister, fetcher, nil
	case formatExport:
		entries, err := catalog.ReadExport(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
		}
		lister, fetcher := catalog.ExportCatalog(entries)
		if fallbackPath == "" {
			return lister, fetcher, nil
		}
		prevRaw, err := dataset.FileSource(fallbackPath).Read(ctx)
		if err != nil {
			return nil, nil, err
		}
		previous, err := dataset.Decode(prevRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", fallbackPath, err)
		}
		return lister, catalog.WithFallback(fetcher, catalog.RecordLookup(previous)), nil
	default:
		return nil, nil, fmt.Errorf("unknown input format %q", format)
	}
}
