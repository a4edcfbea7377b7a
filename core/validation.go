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

package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Quote text bounds, in characters, after trimming.
const (
	MinQuoteLength = 20
	MaxQuoteLength = 300
)

// MaxQuotesPerTranscript caps the extracted quotes of one transcript.
const MaxQuotesPerTranscript = 10

// ValidateTranscript validates a Transcript according to domain rules.
//
// Validation rules:
//   - ID must not be empty or whitespace
//   - every extracted quote must itself be valid
//
// NOT validated (collector-owned, may legitimately be blank):
//   - FullText (an empty body yields zero quotes)
//   - Speaker, SpeakerID, Date and the descriptive fields
func ValidateTranscript(t *Transcript) error {
	if t == nil {
		return fmt.Errorf("%w: transcript is nil", ErrInvalidTranscript)
	}

	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTranscript, ErrEmptyID)
	}

	quotes := t.Quotes()
	for i := range quotes {
		if err := ValidateQuote(&quotes[i]); err != nil {
			return fmt.Errorf("%w: transcript %s: %w", ErrInvalidTranscript, t.ID, err)
		}
	}

	return nil
}

// ValidateQuote validates a Quote according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Text length must be within [MinQuoteLength, MaxQuoteLength]
//   - Categories and Rhetoric must not contain duplicates
func ValidateQuote(q *Quote) error {
	if q == nil {
		return fmt.Errorf("%w: quote is nil", ErrInvalidQuote)
	}

	if q.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuote, ErrEmptyID)
	}

	n := utf8.RuneCountInString(strings.TrimSpace(q.Text))
	if n < MinQuoteLength || n > MaxQuoteLength {
		return fmt.Errorf("%w: %w: %d", ErrInvalidQuote, ErrQuoteLength, n)
	}

	if err := validateLabelSet(q.Categories); err != nil {
		return fmt.Errorf("%w: categories: %w", ErrInvalidQuote, err)
	}
	if err := validateLabelSet(q.Rhetoric); err != nil {
		return fmt.Errorf("%w: rhetoric: %w", ErrInvalidQuote, err)
	}

	return nil
}

// ValidateCorpus checks the corpus-wide invariant that transcript IDs are unique,
// then validates each transcript.
func ValidateCorpus(c *Corpus) error {
	seen := make(map[string]struct{}, len(c.Transcripts))
	for i := range c.Transcripts {
		t := &c.Transcripts[i]
		if err := ValidateTranscript(t); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateTranscriptID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func validateLabelSet(labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}
