package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/speechwatch/core"
)

const (
	// SeedListSourceName is the registry name of the seed-list source.
	SeedListSourceName = "youtube"

	// DefaultMinTranscriptLength is the shortest transcript body, in
	// characters, worth keeping.
	DefaultMinTranscriptLength = 500
)

// SeedEntry is one video in a seed list. TranscriptFile holds the captured
// transcript text and is resolved relative to the seed list.
type SeedEntry struct {
	URL            string `json:"url"`
	SpeakerID      string `json:"speakerId"`
	Title          string `json:"title"`
	Date           string `json:"date"`
	EventType      string `json:"eventType"`
	TranscriptFile string `json:"transcriptFile"`
}

// SeedList builds records from a caller supplied list of videos whose
// transcripts were captured out of band.
type SeedList struct {
	ListPath  string
	Speakers  *SpeakerTable
	MinLength int
	Now       func() time.Time
	Logger    *slog.Logger
}

// NewSeedList creates the seed-list source. An empty listPath leaves the
// source registered but unavailable.
func NewSeedList(listPath string, speakers *SpeakerTable, logger *slog.Logger) *SeedList {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeedList{
		ListPath:  listPath,
		Speakers:  speakers,
		MinLength: DefaultMinTranscriptLength,
		Now:       time.Now,
		Logger:    logger,
	}
}

func (s *SeedList) Name() string { return SeedListSourceName }

// Fetch reads the seed list and every transcript it points to. Entries
// without a URL, with an unreadable transcript, or with a body shorter than
// MinLength are skipped.
func (s *SeedList) Fetch(ctx context.Context) ([]core.Transcript, error) {
	if s.ListPath == "" {
		return nil, fmt.Errorf("%w: no seed list provided", ErrSourceUnavailable)
	}

	data, err := os.ReadFile(s.ListPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", ErrSourceUnavailable, s.ListPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read seed list: %w", err)
	}

	var entries []SeedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode seed list %s: %w", s.ListPath, err)
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	baseDir := filepath.Dir(s.ListPath)

	var out []core.Transcript
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(e.URL) == "" {
			logger.Warn("seed entry without url, skipping", "title", e.Title)
			continue
		}

		text, err := s.readTranscript(baseDir, e.TranscriptFile)
		if err != nil {
			logger.Warn("seed transcript unreadable, skipping", "url", e.URL, "err", err)
			continue
		}
		if utf8.RuneCountInString(text) < s.MinLength {
			logger.Debug("seed transcript too short, skipping", "url", e.URL, "chars", utf8.RuneCountInString(text))
			continue
		}

		t := core.Transcript{
			ID:        core.TranscriptID("yt", e.URL),
			SpeakerID: e.SpeakerID,
			Date:      NormalizeDate(e.Date, now),
			Source:    "YouTube",
			SourceURL: e.URL,
			EventType: e.EventType,
			Title:     e.Title,
			FullText:  text,
		}
		fillSpeaker(&t, s.Speakers)
		if t.EventType == "" {
			t.EventType = DetectEventType(t.Title)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *SeedList) readTranscript(baseDir, name string) (string, error) {
	if name == "" {
		return "", errors.New("no transcript file")
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(baseDir, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
