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

package speechwatch

import (
	"context"
	"log/slog"

	"github.com/poiesic/speechwatch/archive"
	"github.com/poiesic/speechwatch/config"
	"github.com/poiesic/speechwatch/corpus"
	"github.com/poiesic/speechwatch/extract"
	"github.com/poiesic/speechwatch/ingestion"
	"github.com/poiesic/speechwatch/patterns"
	"github.com/poiesic/speechwatch/source"
	"github.com/poiesic/speechwatch/storage"
	"github.com/poiesic/speechwatch/storage/badger"
)

// Workspace ties a data directory to the components that operate on it:
// the corpus store, the run ledger and the quote extractor.
type Workspace struct {
	cfg            *config.Config
	backend        *badger.Backend
	checkpointRepo storage.CheckpointRepository
	store          *corpus.Store
	registry       *source.Registry
	extractor      *extract.Extractor
	logger         *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.logger = logger
	}
}

// NewWorkspace validates cfg and opens the run ledger under its data
// directory. A nil cfg uses config.DefaultConfig.
func NewWorkspace(cfg *config.Config, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	speakers, err := cfg.SpeakerTable()
	if err != nil {
		return nil, err
	}
	table, err := cfg.PatternTable()
	if err != nil {
		return nil, err
	}

	store, err := corpus.NewStore(cfg.CorpusPath(), corpus.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	registry, err := source.BuildRegistry(cfg.DataDir, cfg.Sources, cfg.SeedList, speakers,
		source.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	extractor, err := newExtractor(cfg, table, options.logger)
	if err != nil {
		return nil, err
	}

	// Open backend
	backend, err := badger.OpenBackend(cfg.LedgerPath(), false)
	if err != nil {
		extractor.Release()
		return nil, err
	}

	return &Workspace{
		cfg:            cfg,
		backend:        backend,
		checkpointRepo: badger.NewCheckpointRepository(backend),
		store:          store,
		registry:       registry,
		extractor:      extractor,
		logger:         options.logger,
	}, nil
}

func newExtractor(cfg *config.Config, table *patterns.Table, logger *slog.Logger) (*extract.Extractor, error) {
	opts := []extract.Option{
		extract.WithMaxQuotes(cfg.MaxQuotes),
		extract.WithLogger(logger),
	}
	if cfg.Workers > 0 {
		opts = append(opts, extract.WithPoolSize(cfg.Workers))
	}
	return extract.New(table, opts...)
}

// Close releases the extractor pool and closes the run ledger.
func (w *Workspace) Close() error {
	w.extractor.Release()

	if err := w.checkpointRepo.Close(); err != nil {
		w.logger.Error("error closing checkpoint repository", "err", err)
		return err
	}

	// Close backend
	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (w *Workspace) Config() *config.Config {
	return w.cfg
}

func (w *Workspace) Store() *corpus.Store {
	return w.store
}

func (w *Workspace) CheckpointRepository() storage.CheckpointRepository {
	return w.checkpointRepo
}

// Registry returns the source registry for the configured collectors.
// Sources registered on it are visible to every pipeline of the workspace.
func (w *Workspace) Registry() *source.Registry {
	return w.registry
}

// NewIngestionPipeline returns a pipeline over the workspace's store,
// registry, extractor and run ledger.
func (w *Workspace) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(w.logger)}, opts...)
	return ingestion.NewPipeline(w.store, w.registry, w.extractor, w.checkpointRepo, opts...)
}

// Export writes the persisted corpus to the archive database described by cfg.
func (w *Workspace) Export(ctx context.Context, cfg archive.Config) (archive.ExportResult, error) {
	c, err := w.store.Load(ctx)
	if err != nil {
		return archive.ExportResult{}, err
	}

	a, err := archive.Open(ctx, cfg, w.logger)
	if err != nil {
		return archive.ExportResult{}, err
	}
	defer a.Close()

	return a.Export(ctx, c)
}
