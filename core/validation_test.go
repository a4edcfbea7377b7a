package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTranscript(t *testing.T) {
	validQuote := Quote{
		ID:         "t1-q0",
		Text:       "They are an invasion at our border",
		Categories: []string{"immigration"},
		Rhetoric:   []string{"dehumanizing-language"},
		FactCheck:  UnverifiedFactCheck(),
	}

	processed := Transcript{ID: "t1", FullText: "text"}
	processed.SetQuotes([]Quote{validQuote})

	badQuote := validQuote
	badQuote.Text = "too short"
	withBadQuote := Transcript{ID: "t1"}
	withBadQuote.SetQuotes([]Quote{badQuote})

	tests := []struct {
		name       string
		transcript *Transcript
		wantErr    error
	}{
		{
			name:       "valid unprocessed transcript",
			transcript: &Transcript{ID: "cspan-0001", FullText: "Hello."},
			wantErr:    nil,
		},
		{
			name:       "valid transcript with empty body",
			transcript: &Transcript{ID: "cspan-0001"},
			wantErr:    nil,
		},
		{
			name:       "valid processed transcript",
			transcript: &processed,
			wantErr:    nil,
		},
		{
			name:       "nil transcript",
			transcript: nil,
			wantErr:    ErrInvalidTranscript,
		},
		{
			name:       "empty id",
			transcript: &Transcript{ID: ""},
			wantErr:    ErrEmptyID,
		},
		{
			name:       "whitespace id",
			transcript: &Transcript{ID: "   "},
			wantErr:    ErrEmptyID,
		},
		{
			name:       "invalid nested quote",
			transcript: &withBadQuote,
			wantErr:    ErrQuoteLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTranscript(tt.transcript)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTranscript() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateTranscript() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTranscript() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuote(t *testing.T) {
	tests := []struct {
		name    string
		quote   *Quote
		wantErr error
	}{
		{
			name:    "valid quote",
			quote:   &Quote{ID: "a-q0", Text: "We will never stop this movement", Rhetoric: []string{"absolutist-claims"}},
			wantErr: nil,
		},
		{
			name:    "exactly minimum length",
			quote:   &Quote{ID: "a-q0", Text: strings.Repeat("x", MinQuoteLength)},
			wantErr: nil,
		},
		{
			name:    "exactly maximum length",
			quote:   &Quote{ID: "a-q0", Text: strings.Repeat("x", MaxQuoteLength)},
			wantErr: nil,
		},
		{
			name:    "nil quote",
			quote:   nil,
			wantErr: ErrInvalidQuote,
		},
		{
			name:    "empty id",
			quote:   &Quote{Text: "We will never stop this movement"},
			wantErr: ErrEmptyID,
		},
		{
			name:    "too short",
			quote:   &Quote{ID: "a-q0", Text: strings.Repeat("x", MinQuoteLength-1)},
			wantErr: ErrQuoteLength,
		},
		{
			name:    "too long",
			quote:   &Quote{ID: "a-q0", Text: strings.Repeat("x", MaxQuoteLength+1)},
			wantErr: ErrQuoteLength,
		},
		{
			name:    "multibyte text counted in characters",
			quote:   &Quote{ID: "a-q0", Text: strings.Repeat("é", MinQuoteLength)},
			wantErr: nil,
		},
		{
			name: "duplicate category",
			quote: &Quote{
				ID:         "a-q0",
				Text:       "The election was rigged and stolen",
				Categories: []string{"election", "election"},
			},
			wantErr: ErrDuplicateLabel,
		},
		{
			name: "duplicate rhetoric",
			quote: &Quote{
				ID:       "a-q0",
				Text:     "We will never stop this movement",
				Rhetoric: []string{"absolutist-claims", "absolutist-claims"},
			},
			wantErr: ErrDuplicateLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuote(tt.quote)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQuote() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuote() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCorpus(t *testing.T) {
	c := NewCorpus()
	c.Transcripts = []Transcript{{ID: "a"}, {ID: "b"}}
	if err := ValidateCorpus(c); err != nil {
		t.Fatalf("ValidateCorpus() error = %v, want nil", err)
	}

	c.Transcripts = append(c.Transcripts, Transcript{ID: "a"})
	err := ValidateCorpus(c)
	if !errors.Is(err, ErrDuplicateTranscriptID) {
		t.Fatalf("ValidateCorpus() error = %v, want %v", err, ErrDuplicateTranscriptID)
	}
}
