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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTranscript indicates a Transcript failed validation.
	ErrInvalidTranscript = errors.New("invalid transcript")

	// ErrInvalidQuote indicates a Quote failed validation.
	ErrInvalidQuote = errors.New("invalid quote")

	// ErrEmptyID indicates the ID field is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrQuoteLength indicates quote text is outside the allowed length range.
	ErrQuoteLength = errors.New("quote text length out of range")

	// ErrDuplicateLabel indicates a label appears twice in a quote's label set.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrDuplicateTranscriptID indicates two transcripts in a corpus share an ID.
	ErrDuplicateTranscriptID = errors.New("duplicate transcript id")

	// ErrInvalidTimestamp indicates a timestamp in none of the accepted layouts.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
