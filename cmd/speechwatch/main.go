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
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/speechwatch"
	"github.com/poiesic/speechwatch/archive"
	"github.com/poiesic/speechwatch/config"
	"github.com/poiesic/speechwatch/corpus"
	"github.com/poiesic/speechwatch/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load() // best-effort: load .env if present

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "speechwatch",
		Usage: "Collect political speech transcripts and extract rhetorical quotes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"SPEECHWATCH_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
				EnvVars: []string{"SPEECHWATCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding the corpus, collector outputs and run ledger",
				EnvVars: []string{"SPEECHWATCH_DATA_DIR"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "collect",
				Usage:  "Merge collector output into the corpus and extract quotes",
				Action: collectCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Source to collect from (repeatable)",
					},
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "Collect from every registered source",
					},
					&cli.BoolFlag{
						Name:  "reextract",
						Usage: "Discard existing quotes and extract them again",
					},
					&cli.StringFlag{
						Name:    "seed-list",
						Usage:   "JSON list of videos for the youtube source",
						EnvVars: []string{"SPEECHWATCH_SEED_LIST"},
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Extraction worker pool size (0 picks a default)",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print corpus statistics",
				Action: statsCommand,
			},
			{
				Name:   "export",
				Usage:  "Export the corpus to a SQL archive",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "driver",
						Usage: "Archive driver (sqlite3, pgx)",
						Value: archive.DriverSQLite,
					},
					&cli.StringFlag{
						Name:    "dsn",
						Usage:   "Archive DSN; defaults to archive.db in the data dir for sqlite3",
						EnvVars: []string{"SPEECHWATCH_ARCHIVE_DSN"},
					},
				},
			},
			{
				Name:   "checkpoints",
				Usage:  "List the last run of every source",
				Action: checkpointsCommand,
			},
		},
	}
}

// loadConfig builds the configuration from the config file, if any, and the
// global flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

func openWorkspace(cfg *config.Config) (*speechwatch.Workspace, error) {
	ws, err := speechwatch.NewWorkspace(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	return ws, nil
}

func collectCommand(c *cli.Context) error {
	ctx := c.Context

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("seed-list") {
		cfg.SeedList = c.String("seed-list")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	sources := c.StringSlice("source")
	if c.Bool("all") {
		sources = ws.Registry().Names()
	}
	if len(sources) == 0 {
		slog.Info("no sources selected, extracting pending transcripts only")
	}

	pipeline, err := ws.NewIngestionPipeline()
	if err != nil {
		return err
	}

	res, err := pipeline.Run(ctx, ingestion.RunOptions{
		Sources:   sources,
		Reextract: c.Bool("reextract"),
	})
	if errors.Is(err, ingestion.ErrNothingToPersist) {
		return fmt.Errorf("no transcripts collected and no existing corpus, nothing written: %w", err)
	}
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Run: %s\n", res.RunID)
	for _, sr := range res.Sources {
		fmt.Fprintf(w, "  %-22s %-12s fetched=%d admitted=%d\n", sr.Source, sr.Status, sr.Fetched, sr.Admitted)
	}
	fmt.Fprintf(w, "Added: %d\n", res.Added)
	fmt.Fprintf(w, "Extracted: %d transcripts, %d quotes (%d failed)\n",
		res.Extraction.Processed, res.Extraction.Quotes, res.Extraction.Failed)
	fmt.Fprintf(w, "Corpus: %d transcripts, %d quotes\n", res.Stats.TotalTranscripts, res.Stats.TotalQuotes)
	return nil
}

func statsCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Read-only: the ledger and worker pool are not needed.
	store, err := corpus.NewStore(cfg.CorpusPath())
	if err != nil {
		return err
	}
	corp, err := store.Load(c.Context)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Corpus: %s\n", store.Path())
	if !corp.LastUpdated.IsZero() {
		fmt.Fprintf(w, "Last updated: %s\n", corp.LastUpdated.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(w, "Transcripts: %d\n", corp.Stats.TotalTranscripts)
	fmt.Fprintf(w, "Quotes: %d\n", corp.Stats.TotalQuotes)
	printCounts(c, "By speaker", corp.Stats.BySpeaker)
	printCounts(c, "By topic", corp.Stats.ByTopic)
	printCounts(c, "By rhetoric", corp.Stats.ByRhetoric)
	return nil
}

func printCounts(c *cli.Context, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	w := c.App.Writer
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-24s %d\n", k, counts[k])
	}
}

func exportCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	driver := strings.ToLower(c.String("driver"))
	dsn := c.String("dsn")
	if dsn == "" && driver == archive.DriverSQLite {
		dsn = filepath.Join(cfg.DataDir, "archive.db")
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	res, err := ws.Export(c.Context, archive.Config{Driver: driver, DSN: dsn})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Exported %d transcripts and %d quotes via %s\n", res.Transcripts, res.Quotes, driver)
	return nil
}

func checkpointsCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	cps, err := ws.CheckpointRepository().ListCheckpoints(c.Context)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if len(cps) == 0 {
		fmt.Fprintln(w, "No checkpoints recorded")
		return nil
	}
	for _, cp := range cps {
		fmt.Fprintf(w, "%-22s %s run=%s fetched=%d admitted=%d\n",
			cp.Source, cp.LastRun.Format("2006-01-02 15:04:05"), cp.RunID, cp.Fetched, cp.Admitted)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
