package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/speechwatch/core"
)

// BatchSpec describes a collector output file.
type BatchSpec struct {
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	IDPrefix string `yaml:"idPrefix"`
	Label    string `yaml:"label"`
}

// DefaultBatchSpecs returns the collector outputs read by default.
func DefaultBatchSpecs() []BatchSpec {
	return []BatchSpec{
		{Name: "cspan", File: "cspan_transcripts.json", IDPrefix: "cspan", Label: "C-SPAN"},
		{Name: "whitehouse", File: "whitehouse_transcripts.json", IDPrefix: "wh", Label: "White House"},
		{Name: "whitehouse-briefings", File: "whitehouse_transcripts_briefings.json", IDPrefix: "wh-briefing", Label: "White House"},
	}
}

// batchEnvelope is the document a collector writes.
type batchEnvelope struct {
	Source      string            `json:"source"`
	CollectedAt string            `json:"collected_at"`
	Count       int               `json:"count"`
	Transcripts []core.Transcript `json:"transcripts"`
}

// BatchFile reads the output file of an external collector.
type BatchFile struct {
	Spec     BatchSpec
	Path     string
	Speakers *SpeakerTable
	Now      func() time.Time
}

// NewBatchFile creates a source for spec, resolving its file against dataDir.
func NewBatchFile(spec BatchSpec, dataDir string, speakers *SpeakerTable) *BatchFile {
	path := spec.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}
	return &BatchFile{
		Spec:     spec,
		Path:     path,
		Speakers: speakers,
		Now:      time.Now,
	}
}

func (b *BatchFile) Name() string { return b.Spec.Name }

// Fetch reads and normalizes the batch. A missing file means the collector
// has not run and is reported as ErrSourceUnavailable.
func (b *BatchFile) Fetch(ctx context.Context) ([]core.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", ErrSourceUnavailable, b.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.Path, err)
	}

	records, err := decodeBatch(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.Path, err)
	}

	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}
	for i := range records {
		b.normalize(&records[i], now)
	}
	return records, nil
}

func decodeBatch(data []byte) ([]core.Transcript, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var records []core.Transcript
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}
	var env batchEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return env.Transcripts, nil
}

// normalize fills fields the collector left blank. Collectors emit an empty
// quote list for fresh records, which is read as "not yet processed".
// Collector IDs are not stable across processes, so any record with a
// source URL gets its ID derived from that URL.
func (b *BatchFile) normalize(t *core.Transcript, now time.Time) {
	if t.Processed() && len(t.Quotes()) == 0 {
		t.ResetQuotes()
	}
	if strings.TrimSpace(t.SourceURL) != "" {
		t.Rekey(core.TranscriptID(b.Spec.IDPrefix, t.SourceURL))
	}
	fillSpeaker(t, b.Speakers)
	if t.Source == "" {
		t.Source = b.Spec.Label
	}
	if t.EventType == "" {
		t.EventType = DetectEventType(t.Title)
	}
	t.Date = NormalizeDate(t.Date, now)
}

func fillSpeaker(t *core.Transcript, speakers *SpeakerTable) {
	if t.SpeakerID == "" {
		t.SpeakerID = UnknownSpeakerID
	}
	if speakers == nil {
		return
	}
	name, role := speakers.Lookup(t.SpeakerID)
	if t.Speaker == "" {
		t.Speaker = name
	}
	if t.Role == "" {
		t.Role = role
	}
}
