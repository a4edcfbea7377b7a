package source

import (
	"fmt"
	"strings"
	"time"
)

const (
	// UnknownSpeakerID marks a transcript whose speaker could not be identified.
	UnknownSpeakerID = "unknown"

	// UnknownSpeakerName is the display name used for UnknownSpeakerID.
	UnknownSpeakerName = "White House Official"
)

// Speaker is a tracked public figure.
type Speaker struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Roles []string `yaml:"roles"`
}

// DefaultSpeakers returns the tracked speakers in their canonical order.
func DefaultSpeakers() []Speaker {
	return []Speaker{
		{ID: "donald-trump", Name: "Donald Trump", Roles: []string{"President"}},
		{ID: "stephen-miller", Name: "Stephen Miller", Roles: []string{"Deputy Chief of Staff", "Senior Advisor"}},
		{ID: "kristi-noem", Name: "Kristi Noem", Roles: []string{"DHS Secretary", "Governor"}},
		{ID: "jd-vance", Name: "JD Vance", Roles: []string{"Vice President", "Senator"}},
		{ID: "marjorie-taylor-greene", Name: "Marjorie Taylor Greene", Roles: []string{"Representative"}},
		{ID: "matt-gaetz", Name: "Matt Gaetz", Roles: []string{"Representative"}},
		{ID: "jim-jordan", Name: "Jim Jordan", Roles: []string{"Representative", "Judiciary Chairman"}},
		{ID: "press-secretary", Name: "Press Secretary", Roles: []string{"White House Press Secretary"}},
	}
}

// SpeakerTable maps speaker IDs to names and roles. It is read-only once built.
type SpeakerTable struct {
	byID  map[string]Speaker
	order []string
}

// NewSpeakerTable builds a table from speakers. IDs must be unique and non-empty.
func NewSpeakerTable(speakers []Speaker) (*SpeakerTable, error) {
	t := &SpeakerTable{byID: make(map[string]Speaker, len(speakers))}
	for _, s := range speakers {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidSpeaker)
		}
		if _, dup := t.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidSpeaker, id)
		}
		roles := make([]string, len(s.Roles))
		copy(roles, s.Roles)
		t.byID[id] = Speaker{ID: id, Name: s.Name, Roles: roles}
		t.order = append(t.order, id)
	}
	return t, nil
}

// DefaultSpeakerTable returns a table over DefaultSpeakers.
func DefaultSpeakerTable() *SpeakerTable {
	t, err := NewSpeakerTable(DefaultSpeakers())
	if err != nil {
		panic(err)
	}
	return t
}

// IDs returns the speaker IDs in table order.
func (t *SpeakerTable) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Get returns the speaker with the given ID.
func (t *SpeakerTable) Get(id string) (Speaker, bool) {
	s, ok := t.byID[id]
	return s, ok
}

// Lookup returns the display name and primary role for id. An empty or
// unknown-marker id resolves to UnknownSpeakerName with no role. Any other
// unlisted id is used as its own name.
func (t *SpeakerTable) Lookup(id string) (name, role string) {
	if id == "" || id == UnknownSpeakerID {
		return UnknownSpeakerName, ""
	}
	s, ok := t.byID[id]
	if !ok {
		return id, ""
	}
	if len(s.Roles) > 0 {
		role = s.Roles[0]
	}
	return s.Name, role
}

// Event types assigned by DetectEventType.
const (
	EventHearing        = "hearing"
	EventTestimony      = "testimony"
	EventBriefing       = "briefing"
	EventSpeech         = "speech"
	EventInterview      = "interview"
	EventRally          = "rally"
	EventDebate         = "debate"
	EventStatement      = "statement"
	EventExecutiveOrder = "executive_order"
)

var eventKeywords = []struct {
	event    string
	keywords []string
}{
	{EventHearing, []string{"hearing"}},
	{EventTestimony, []string{"testimony"}},
	{EventBriefing, []string{"press", "briefing"}},
	{EventSpeech, []string{"speech", "address", "remarks"}},
	{EventInterview, []string{"interview"}},
	{EventRally, []string{"rally"}},
	{EventDebate, []string{"debate"}},
	{EventStatement, []string{"statement"}},
	{EventExecutiveOrder, []string{"executive order"}},
}

// DetectEventType classifies an event from its title. The first matching
// keyword group wins; titles matching nothing are speeches.
func DetectEventType(title string) string {
	lower := strings.ToLower(title)
	for _, ek := range eventKeywords {
		for _, kw := range ek.keywords {
			if strings.Contains(lower, kw) {
				return ek.event
			}
		}
	}
	return EventSpeech
}

// DateLayout is the canonical transcript date format.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
	DateLayout,
	"January 2 2006",
}

// NormalizeDate converts a collector date string to DateLayout. ISO
// timestamps keep their date part. Blank or unparseable input falls back to
// the date of now.
func NormalizeDate(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format(DateLayout)
	}

	if i := strings.IndexByte(raw, 'T'); i > 0 {
		if d, err := time.Parse(DateLayout, raw[:i]); err == nil {
			return d.Format(DateLayout)
		}
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d.Format(DateLayout)
		}
	}
	return now.Format(DateLayout)
}
