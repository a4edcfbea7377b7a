package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/speechwatch/core"
)

// Status is the outcome of asking one source for records.
type Status string

const (
	StatusOK          Status = "ok"
	StatusUnavailable Status = "unavailable"
	StatusFailed      Status = "failed"
	StatusUnknown     Status = "unknown"
)

// SourceReport is the result of one source within a Collect call.
// Transcripts is empty unless Status is StatusOK.
type SourceReport struct {
	Source      string
	Status      Status
	Transcripts []core.Transcript
	Err         error
}

// Registry holds the sources available to a run, keyed by name.
// Register every source before the first Collect.
type Registry struct {
	sources map[string]TranscriptSource
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		sources: make(map[string]TranscriptSource),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds src under its name.
func (r *Registry) Register(src TranscriptSource) error {
	name := src.Name()
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownSource)
	}
	if _, ok := r.sources[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, name)
	}
	r.sources[name] = src
	return nil
}

// Get returns the source registered under name.
func (r *Registry) Get(name string) (TranscriptSource, bool) {
	src, ok := r.sources[name]
	return src, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collect asks each named source for records, in the order given. Unknown,
// unavailable and failing sources contribute nothing and are logged; the
// remaining sources are still called. Collect only returns an error when ctx
// is canceled, along with the reports gathered so far.
func (r *Registry) Collect(ctx context.Context, names []string) ([]SourceReport, error) {
	reports := make([]SourceReport, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		src, ok := r.sources[name]
		if !ok {
			r.logger.Warn("unknown source, skipping", "source", name)
			reports = append(reports, SourceReport{
				Source: name,
				Status: StatusUnknown,
				Err:    fmt.Errorf("%w: %s", ErrUnknownSource, name),
			})
			continue
		}

		records, err := fetch(ctx, src)
		switch {
		case err == nil:
			r.logger.Info("collected transcripts", "source", name, "count", len(records))
			reports = append(reports, SourceReport{Source: name, Status: StatusOK, Transcripts: records})
		case errors.Is(err, ErrSourceUnavailable):
			r.logger.Warn("source unavailable", "source", name, "err", err)
			reports = append(reports, SourceReport{Source: name, Status: StatusUnavailable, Err: err})
		case ctx.Err() != nil:
			return reports, ctx.Err()
		default:
			serr := &SourceError{Source: name, Err: err}
			r.logger.Error("source failed", "source", name, "err", err)
			reports = append(reports, SourceReport{Source: name, Status: StatusFailed, Err: serr})
		}
	}
	return reports, nil
}

func fetch(ctx context.Context, src TranscriptSource) (records []core.Transcript, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return src.Fetch(ctx)
}

// BuildRegistry registers a BatchFile for every spec, resolved against
// dataDir, followed by the seed-list source.
func BuildRegistry(dataDir string, specs []BatchSpec, seedList string, speakers *SpeakerTable, opts ...Option) (*Registry, error) {
	r, err := NewRegistry(opts...)
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if err := r.Register(NewBatchFile(spec, dataDir, speakers)); err != nil {
			return nil, err
		}
	}
	if err := r.Register(NewSeedList(seedList, speakers, r.logger)); err != nil {
		return nil, err
	}
	return r, nil
}
