package core

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// TranscriptID derives a stable transcript identifier from a source URL.
// The URL is canonicalized first so trivially different spellings of the
// same page (host case, fragment, trailing slash) map to the same ID.
// The result looks like "cspan-1a2b3c4d".
func TranscriptID(prefix, sourceURL string) string {
	h, _ := blake2b.New(4, nil) // 4 bytes = 8 hex chars
	h.Write([]byte(CanonicalURL(sourceURL)))
	return prefix + "-" + hex.EncodeToString(h.Sum(nil))
}

// CanonicalURL normalizes a URL for hashing. Unparseable input is only trimmed.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if len(u.Path) > 1 {
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawPath = ""
	}
	return u.String()
}

// Transcript is a single speech record as emitted by a collector.
// ExtractedQuotes is nil until the quote extractor has run; a non-nil
// pointer to an empty slice means "processed, nothing worth quoting".
type Transcript struct {
	ID              string   `json:"id"`
	Speaker         string   `json:"speaker"`
	SpeakerID       string   `json:"speakerId"`
	Role            string   `json:"role"`
	Date            string   `json:"date"`
	Source          string   `json:"source"`
	SourceURL       string   `json:"sourceUrl"`
	EventType       string   `json:"eventType"`
	Title           string   `json:"title"`
	FullText        string   `json:"fullText"`
	ExtractedQuotes *[]Quote `json:"extractedQuotes,omitempty"`
}

// Rekey sets the transcript ID and renumbers any extracted quotes to match.
// The quote slice is copied, never modified in place.
func (t *Transcript) Rekey(id string) {
	if t.ID == id {
		return
	}
	t.ID = id
	if t.ExtractedQuotes == nil {
		return
	}
	quotes := make([]Quote, len(*t.ExtractedQuotes))
	copy(quotes, *t.ExtractedQuotes)
	for i := range quotes {
		quotes[i].ID = fmt.Sprintf("%s-q%d", id, i)
	}
	t.ExtractedQuotes = &quotes
}

// Processed reports whether quote extraction has already run.
func (t *Transcript) Processed() bool {
	return t.ExtractedQuotes != nil
}

// Quotes returns the extracted quotes, or nil if extraction has not run.
func (t *Transcript) Quotes() []Quote {
	if t.ExtractedQuotes == nil {
		return nil
	}
	return *t.ExtractedQuotes
}

// SetQuotes marks the transcript as processed with the given quotes.
// A nil slice is stored as an empty one.
func (t *Transcript) SetQuotes(quotes []Quote) {
	if quotes == nil {
		quotes = []Quote{}
	}
	t.ExtractedQuotes = &quotes
}

// ResetQuotes returns the transcript to the unprocessed state.
func (t *Transcript) ResetQuotes() {
	t.ExtractedQuotes = nil
}

// Quote is a sentence lifted from a transcript together with its labels.
type Quote struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Categories []string  `json:"categories"`
	Rhetoric   []string  `json:"rhetoric"`
	FactCheck  FactCheck `json:"factCheck"`
}

// FactCheck is owned by an external verification process.
type FactCheck struct {
	Rating    string  `json:"rating"`
	Source    *string `json:"source"`
	SourceURL *string `json:"sourceUrl"`
}

// RatingUnverified is the rating assigned to freshly extracted quotes.
const RatingUnverified = "unverified"

// UnverifiedFactCheck returns the placeholder fact check for new quotes.
func UnverifiedFactCheck() FactCheck {
	return FactCheck{Rating: RatingUnverified}
}

// Schema is the static header of a corpus file.
type Schema struct {
	Description string `json:"description"`
	Version     string `json:"version"`
}

// DefaultSchema returns the schema header written to new corpus files.
func DefaultSchema() Schema {
	return Schema{
		Description: "Political speech transcripts database",
		Version:     "1.0.0",
	}
}

// Stats is derived from the transcript list on every save. It is never
// edited by hand.
type Stats struct {
	TotalTranscripts int            `json:"totalTranscripts"`
	TotalQuotes      int            `json:"totalQuotes"`
	BySpeaker        map[string]int `json:"bySpeaker"`
	ByTopic          map[string]int `json:"byTopic"`
	ByRhetoric       map[string]int `json:"byRhetoric"`
}

// Corpus is the full persisted collection.
type Corpus struct {
	Schema      Schema       `json:"_schema"`
	Transcripts []Transcript `json:"transcripts"`
	LastUpdated time.Time    `json:"lastUpdated"`
	Stats       Stats        `json:"stats"`
}

// timestampLayouts are tried in order when reading lastUpdated. Files
// written by the Python collectors carry a zoneless local timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp with or without a zone.
// Zoneless values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// UnmarshalJSON decodes a corpus, accepting any ISO-8601 lastUpdated value.
// Encoding is unchanged: lastUpdated is always written as RFC 3339.
func (c *Corpus) UnmarshalJSON(data []byte) error {
	type Alias Corpus
	aux := struct {
		*Alias
		LastUpdated *string `json:"lastUpdated"`
	}{Alias: (*Alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.LastUpdated = time.Time{}
	if aux.LastUpdated == nil || *aux.LastUpdated == "" {
		return nil
	}
	t, err := ParseTimestamp(*aux.LastUpdated)
	if err != nil {
		return err
	}
	c.LastUpdated = t
	return nil
}

// NewCorpus returns an empty corpus with the default schema.
func NewCorpus() *Corpus {
	return &Corpus{
		Schema:      DefaultSchema(),
		Transcripts: []Transcript{},
		Stats: Stats{
			BySpeaker:  map[string]int{},
			ByTopic:    map[string]int{},
			ByRhetoric: map[string]int{},
		},
	}
}

// Checkpoint records the outcome of the last run of a transcript source.
type Checkpoint struct {
	Source   string
	RunID    string
	LastRun  time.Time
	Fetched  int
	Admitted int
}
