package corpus

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/speechwatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	path := filepath.Join(t.TempDir(), "data", DefaultFileName)
	s, err := NewStore(path, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return s
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	exists, err := s.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	c, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c.Transcripts)
	assert.Equal(t, core.DefaultSchema(), c.Schema)
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := core.NewCorpus()
	processed := core.Transcript{ID: "a", Speaker: "Donald Trump", SpeakerID: "donald-trump", FullText: "text"}
	processed.SetQuotes([]core.Quote{{
		ID:         "a-q0",
		Text:       "They are an invasion at our border",
		Categories: []string{"immigration"},
		Rhetoric:   []string{"dehumanizing-language"},
		FactCheck:  core.UnverifiedFactCheck(),
	}})
	c.Transcripts = []core.Transcript{processed, {ID: "b", SpeakerID: "jd-vance"}}

	require.NoError(t, s.Save(ctx, c))
	assert.Equal(t, fixedNow, c.LastUpdated)
	assert.Equal(t, 2, c.Stats.TotalTranscripts)
	assert.Equal(t, 1, c.Stats.TotalQuotes)

	exists, err := s.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.Transcripts, loaded.Transcripts)
	assert.Equal(t, c.Stats, loaded.Stats)
	assert.True(t, loaded.LastUpdated.Equal(fixedNow))
	assert.True(t, loaded.Transcripts[0].Processed())
	assert.False(t, loaded.Transcripts[1].Processed())
}

func TestStore_SaveFormat(t *testing.T) {
	s := newTestStore(t)

	c := core.NewCorpus()
	empty := core.Transcript{ID: "a"}
	empty.SetQuotes(nil)
	c.Transcripts = []core.Transcript{empty}
	require.NoError(t, s.Save(context.Background(), c))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "{\n  \"_schema\": {"), text)
	assert.Contains(t, text, `"extractedQuotes": []`)
	assert.Contains(t, text, `"lastUpdated": "2025-03-14T12:00:00Z"`)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, []string{"_schema", "transcripts", "lastUpdated", "stats"}, keys(raw))
}

func TestStore_SaveReplacesAndLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := core.NewCorpus()
	c.Transcripts = []core.Transcript{{ID: "a"}}
	require.NoError(t, s.Save(ctx, c))
	c.Transcripts = append(c.Transcripts, core.Transcript{ID: "b"})
	require.NoError(t, s.Save(ctx, c))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultFileName, entries[0].Name())

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Transcripts, 2)
}

func TestStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{not json"},
		{name: "wrong shape", content: `{"transcripts": {"a": 1}}`},
		{name: "duplicate ids", content: `{"transcripts": [{"id": "a"}, {"id": "a"}]}`},
		{name: "missing id", content: `{"transcripts": [{"title": "x"}]}`},
		{name: "bad timestamp", content: `{"lastUpdated": "yesterday", "transcripts": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0o644))

			_, err := s.Load(context.Background())
			assert.ErrorIs(t, err, ErrMalformedCorpus)

			data, err := os.ReadFile(s.Path())
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestStore_LoadFillsDefaults(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"transcripts": [{"id": "a", "extractedQuotes": []}]}`), 0o644))

	c, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSchema(), c.Schema)
	require.Len(t, c.Transcripts, 1)
	assert.True(t, c.Transcripts[0].Processed())
}

func TestStore_LoadZonelessTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))

	legacy := `{
  "_schema": {"description": "Political speech transcripts database", "version": "1.0.0"},
  "transcripts": [{"id": "cspan-0001", "speakerId": "jd-vance", "role": null, "fullText": "text"}],
  "lastUpdated": "2025-01-15T10:30:00.123456",
  "stats": {"totalTranscripts": 1, "totalQuotes": 0, "bySpeaker": {"jd-vance": 1}, "byTopic": {}, "byRhetoric": {}}
}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(legacy), 0o644))

	c, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c.Transcripts, 1)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 30, 0, 123456000, time.UTC), c.LastUpdated)

	// Saving rewrites the timestamp as RFC 3339.
	require.NoError(t, s.Save(ctx, c))
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lastUpdated": "2025-03-14T12:00:00Z"`)
}

func TestStore_SaveNil(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Save(context.Background(), nil), ErrNilCorpus)
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore("")
	assert.Error(t, err)
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
