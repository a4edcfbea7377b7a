package extract

import "errors"

var (
	// ErrPatternTableRequired is returned when no pattern table is provided.
	ErrPatternTableRequired = errors.New("pattern table required")

	// ErrInvalidBounds is returned when an extraction limit is out of range.
	ErrInvalidBounds = errors.New("invalid extraction bounds")

	// ErrExtractionPanic wraps a panic recovered while extracting one transcript.
	ErrExtractionPanic = errors.New("extraction panicked")
)
