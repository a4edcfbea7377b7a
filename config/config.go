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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/speechwatch/core"
	"github.com/poiesic/speechwatch/patterns"
	"github.com/poiesic/speechwatch/source"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig indicates a configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the settings for a speechwatch run.
type Config struct {
	// DataDir holds the corpus file, collector outputs and the run ledger.
	// Default: "data"
	DataDir string `yaml:"dataDir"`

	// CorpusFile is the corpus file name, relative to DataDir unless absolute.
	// Default: "transcripts.json"
	CorpusFile string `yaml:"corpusFile"`

	// LedgerDir is the run ledger directory, relative to DataDir unless absolute.
	// Default: "ledger"
	LedgerDir string `yaml:"ledgerDir"`

	// Sources lists the collector output files to read.
	Sources []source.BatchSpec `yaml:"sources"`

	// SeedList is the optional video list for the seed-list source.
	SeedList string `yaml:"seedList"`

	// Speakers is the tracked speaker table.
	Speakers []source.Speaker `yaml:"speakers"`

	// Patterns is the ordered pattern table used for quote extraction.
	Patterns []patterns.Rule `yaml:"patterns"`

	// MaxQuotes caps quotes per transcript. It may lower the cap but never
	// exceed core.MaxQuotesPerTranscript. Default: 10
	MaxQuotes int `yaml:"maxQuotes"`

	// Workers sizes the extraction worker pool. Zero picks a default.
	Workers int `yaml:"workers"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDataDir sets the data directory.
func WithDataDir(dir string) ConfigOption {
	return func(c *Config) {
		c.DataDir = dir
	}
}

// WithSeedList sets the seed list path.
func WithSeedList(path string) ConfigOption {
	return func(c *Config) {
		c.SeedList = path
	}
}

// WithWorkers sets the extraction pool size.
func WithWorkers(n int) ConfigOption {
	return func(c *Config) {
		c.Workers = n
	}
}

// DefaultConfig returns a Config with the built-in sources, speakers and
// pattern table.
func DefaultConfig() *Config {
	return &Config{
		DataDir:    "data",
		CorpusFile: "transcripts.json",
		LedgerDir:  "ledger",
		Sources:    source.DefaultBatchSpecs(),
		Speakers:   source.DefaultSpeakers(),
		Patterns:   patterns.DefaultRules(),
		MaxQuotes:  core.MaxQuotesPerTranscript,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDataDir("/var/lib/speechwatch"),
//	    WithWorkers(4),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads a YAML configuration file over the defaults. Keys absent from
// the file keep their default values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Normalize trims string settings and fills zero values with defaults.
func (c *Config) Normalize() {
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.CorpusFile = strings.TrimSpace(c.CorpusFile)
	c.LedgerDir = strings.TrimSpace(c.LedgerDir)
	c.SeedList = strings.TrimSpace(c.SeedList)

	def := DefaultConfig()
	if c.CorpusFile == "" {
		c.CorpusFile = def.CorpusFile
	}
	if c.LedgerDir == "" {
		c.LedgerDir = def.LedgerDir
	}
	if c.MaxQuotes == 0 {
		c.MaxQuotes = def.MaxQuotes
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.DataDir == "" {
		return fmt.Errorf("%w: data dir is required", ErrInvalidConfig)
	}
	if c.MaxQuotes < 1 || c.MaxQuotes > core.MaxQuotesPerTranscript {
		return fmt.Errorf("%w: maxQuotes must be between 1 and %d", ErrInvalidConfig, core.MaxQuotesPerTranscript)
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for _, s := range c.Sources {
		if s.Name == "" || s.File == "" {
			return fmt.Errorf("%w: source needs a name and a file", ErrInvalidConfig)
		}
		if s.Name == source.SeedListSourceName {
			return fmt.Errorf("%w: source name %q is reserved", ErrInvalidConfig, s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: duplicate source %q", ErrInvalidConfig, s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	if _, err := c.SpeakerTable(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.PatternTable(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// CorpusPath returns the corpus file location.
func (c *Config) CorpusPath() string {
	return c.resolve(c.CorpusFile)
}

// LedgerPath returns the run ledger directory.
func (c *Config) LedgerPath() string {
	return c.resolve(c.LedgerDir)
}

// SpeakerTable builds the speaker table.
func (c *Config) SpeakerTable() (*source.SpeakerTable, error) {
	return source.NewSpeakerTable(c.Speakers)
}

// PatternTable compiles the pattern table.
func (c *Config) PatternTable() (*patterns.Table, error) {
	return patterns.NewTable(c.Patterns)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}
