package ingestion

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/speechwatch/core"
	"github.com/poiesic/speechwatch/corpus"
	"github.com/poiesic/speechwatch/extract"
	"github.com/poiesic/speechwatch/source"
	"github.com/poiesic/speechwatch/storage"
)

// Pipeline runs collection over a corpus store.
type Pipeline struct {
	store       *corpus.Store
	registry    *source.Registry
	extractor   *extract.Extractor
	checkpoints storage.CheckpointRepository
	now         func() time.Time
	newRunID    func() string
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithClock sets the time source for checkpoints.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) error {
		if now != nil {
			p.now = now
		}
		return nil
	}
}

// NewPipeline creates a pipeline. The caller keeps ownership of every
// dependency and releases them after the pipeline is done.
func NewPipeline(
	store *corpus.Store,
	registry *source.Registry,
	extractor *extract.Extractor,
	checkpoints storage.CheckpointRepository,
	opts ...Option,
) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	p := &Pipeline{
		store:       store,
		registry:    registry,
		extractor:   extractor,
		checkpoints: checkpoints,
		now:         time.Now,
		newRunID:    uuid.NewString,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RunOptions selects what a run does.
type RunOptions struct {
	// Sources are asked for records in this order. Empty means no
	// collection: the run only extracts and saves.
	Sources []string

	// Reextract discards every transcript's quotes before extraction.
	Reextract bool
}

// SourceResult is the per-source outcome of a run.
type SourceResult struct {
	Source     string
	Status     source.Status
	Fetched    int
	Admitted   int
	Duplicates int
	Skipped    int
	Err        error
}

// Result summarizes a run.
type Result struct {
	RunID      string
	Sources    []SourceResult
	Added      int
	Extraction extract.AnnotateResult
	Stats      core.Stats
}

// Run performs one collection run. The corpus file is written at most once,
// after merging and extraction. If ctx is canceled before the save, nothing
// is written.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	res := &Result{RunID: p.newRunID()}
	logger := p.logger.With("run", res.RunID)

	existed, err := p.store.Exists()
	if err != nil {
		return res, err
	}
	c, err := p.store.Load(ctx)
	if err != nil {
		return res, err
	}

	if opts.Reextract {
		for i := range c.Transcripts {
			c.Transcripts[i].ResetQuotes()
		}
		logger.Info("cleared extracted quotes", "transcripts", len(c.Transcripts))
	}

	reports, err := p.registry.Collect(ctx, opts.Sources)
	if err != nil {
		return res, err
	}

	for _, rep := range reports {
		sr := SourceResult{
			Source:  rep.Source,
			Status:  rep.Status,
			Fetched: len(rep.Transcripts),
			Err:     rep.Err,
		}
		if len(rep.Transcripts) > 0 {
			incoming, adopted := corpus.AdoptExistingIDs(c.Transcripts, rep.Transcripts)
			if adopted > 0 {
				logger.Debug("matched records to stored transcripts by url", "source", rep.Source, "count", adopted)
			}
			m := corpus.Merge(c.Transcripts, incoming)
			c.Transcripts = m.Transcripts
			sr.Admitted = m.Added
			sr.Duplicates = m.Duplicates
			sr.Skipped = m.Skipped
			res.Added += m.Added
			if m.Skipped > 0 {
				logger.Warn("records without id dropped", "source", rep.Source, "count", m.Skipped)
			}
		}
		res.Sources = append(res.Sources, sr)
	}
	logger.Info("merged transcripts", "added", res.Added, "total", len(c.Transcripts))

	res.Extraction = p.extractor.Annotate(ctx, c.Transcripts)
	logger.Info("extracted quotes",
		"processed", res.Extraction.Processed,
		"skipped", res.Extraction.Skipped,
		"failed", res.Extraction.Failed,
		"quotes", res.Extraction.Quotes)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if len(c.Transcripts) == 0 && !existed {
		logger.Warn("no transcripts collected and no existing corpus")
		return res, ErrNothingToPersist
	}

	if err := p.store.Save(ctx, c); err != nil {
		return res, err
	}
	res.Stats = c.Stats

	p.recordCheckpoints(ctx, logger, res)
	return res, nil
}

// recordCheckpoints stores a checkpoint for every source that delivered a
// batch. Ledger failures are logged; the corpus is already saved.
func (p *Pipeline) recordCheckpoints(ctx context.Context, logger *slog.Logger, res *Result) {
	now := p.now().UTC()
	for _, sr := range res.Sources {
		if sr.Status != source.StatusOK {
			continue
		}
		cp := &core.Checkpoint{
			Source:   sr.Source,
			RunID:    res.RunID,
			LastRun:  now,
			Fetched:  sr.Fetched,
			Admitted: sr.Admitted,
		}
		if err := p.checkpoints.SaveCheckpoint(ctx, cp); err != nil {
			logger.Error("error saving checkpoint", "source", sr.Source, "err", err)
		}
	}
}
