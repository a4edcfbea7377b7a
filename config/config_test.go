package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/speechwatch/patterns"
	"github.com/poiesic/speechwatch/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, filepath.Join("data", "transcripts.json"), cfg.CorpusPath())
	assert.Equal(t, filepath.Join("data", "ledger"), cfg.LedgerPath())
	assert.Len(t, cfg.Sources, 3)
	assert.Len(t, cfg.Patterns, 5)

	table, err := cfg.PatternTable()
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(WithDataDir("/srv/speechwatch"), WithWorkers(3), WithSeedList("videos.json"))
	assert.Equal(t, "/srv/speechwatch", cfg.DataDir)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "videos.json", cfg.SeedList)
	assert.Equal(t, "/srv/speechwatch/transcripts.json", cfg.CorpusPath())
}

func TestConfig_AbsolutePaths(t *testing.T) {
	cfg := NewConfig(WithDataDir("data"))
	cfg.CorpusFile = "/tmp/corpus.json"
	assert.Equal(t, "/tmp/corpus.json", cfg.CorpusPath())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"blank data dir", func(c *Config) { c.DataDir = "  " }, false},
		{"zero max quotes gets default", func(c *Config) { c.MaxQuotes = 0 }, true},
		{"negative max quotes", func(c *Config) { c.MaxQuotes = -1 }, false},
		{"max quotes at cap", func(c *Config) { c.MaxQuotes = 10 }, true},
		{"max quotes above cap", func(c *Config) { c.MaxQuotes = 11 }, false},
		{"max quotes far above cap", func(c *Config) { c.MaxQuotes = 25 }, false},
		{"source without file", func(c *Config) { c.Sources = []source.BatchSpec{{Name: "x"}} }, false},
		{"duplicate source", func(c *Config) {
			c.Sources = append(c.Sources, source.BatchSpec{Name: "cspan", File: "other.json"})
		}, false},
		{"reserved source name", func(c *Config) {
			c.Sources = []source.BatchSpec{{Name: source.SeedListSourceName, File: "yt.json"}}
		}, false},
		{"bad pattern", func(c *Config) { c.Patterns = []patterns.Rule{{Expr: "(", Label: "x"}} }, false},
		{"duplicate speaker", func(c *Config) {
			c.Speakers = append(c.Speakers, source.Speaker{ID: "jd-vance"})
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoad_MaxQuotesAboveCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speechwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxQuotes: 25\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestLoad_ThresholdIsNotConfigurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speechwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("minCategories: 1\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speechwatch.yaml")
	content := `
dataDir: /var/lib/speechwatch
maxQuotes: 5
sources:
  - name: cspan
    file: cspan_transcripts.json
    idPrefix: cspan
    label: C-SPAN
patterns:
  - expr: '\b(wall|deport\w*)\b'
    label: immigration
  - expr: '\b(never|always)\b'
    label: absolutist-claims
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/var/lib/speechwatch", cfg.DataDir)
	assert.Equal(t, 5, cfg.MaxQuotes)
	assert.Equal(t, "ledger", cfg.LedgerDir, "unset keys keep defaults")
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "C-SPAN", cfg.Sources[0].Label)
	require.Len(t, cfg.Patterns, 2)
	assert.Equal(t, `\b(wall|deport\w*)\b`, cfg.Patterns[0].Expr)
	assert.Len(t, cfg.Speakers, len(source.DefaultSpeakers()))
}

func TestLoad_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataDri: typo\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
