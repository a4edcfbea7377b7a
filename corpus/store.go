package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/speechwatch/core"
)

// DefaultFileName is the corpus file name inside the data directory.
const DefaultFileName = "transcripts.json"

// Store reads and writes the corpus file.
type Store struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store) error

// WithClock sets the time source used for LastUpdated.
// Default is time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		s.now = now
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a Store for the corpus file at path.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	if path == "" {
		return nil, errors.New("corpus path cannot be empty")
	}
	s := &Store{
		path:   path,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the corpus file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the corpus file is present.
func (s *Store) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads the corpus file. A missing file yields an empty corpus.
// A file that cannot be decoded, or that repeats a transcript ID, returns
// ErrMalformedCorpus; callers must not overwrite it.
func (s *Store) Load(ctx context.Context) (*core.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("no existing corpus, starting empty", "path", s.path)
		return core.NewCorpus(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	c := &core.Corpus{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCorpus, s.path, err)
	}
	if c.Schema == (core.Schema{}) {
		c.Schema = core.DefaultSchema()
	}
	if c.Transcripts == nil {
		c.Transcripts = []core.Transcript{}
	}
	if err := core.ValidateCorpus(c); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCorpus, s.path, err)
	}

	s.logger.Info("loaded corpus", "path", s.path, "transcripts", len(c.Transcripts))
	return c, nil
}

// Save recomputes the corpus stats, stamps LastUpdated and writes the corpus
// with two-space indentation. The file is written to a temporary sibling and
// renamed into place, so readers see either the old or the new corpus.
func (s *Store) Save(ctx context.Context, c *core.Corpus) error {
	if c == nil {
		return ErrNilCorpus
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if c.Transcripts == nil {
		c.Transcripts = []core.Transcript{}
	}
	if c.Schema == (core.Schema{}) {
		c.Schema = core.DefaultSchema()
	}
	c.Stats = Aggregate(c.Transcripts)
	c.LastUpdated = s.now().UTC()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write corpus: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close corpus: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod corpus: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace corpus: %w", err)
	}

	s.logger.Info("saved corpus",
		"path", s.path,
		"transcripts", c.Stats.TotalTranscripts,
		"quotes", c.Stats.TotalQuotes)
	return nil
}
