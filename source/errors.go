package source

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable indicates a source has nothing it can be asked for,
	// such as a collector that has not produced output yet.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnknownSource indicates a name that is not registered.
	ErrUnknownSource = errors.New("unknown source")

	// ErrDuplicateSource indicates a name registered twice.
	ErrDuplicateSource = errors.New("source already registered")

	// ErrInvalidSpeaker indicates a malformed speaker table entry.
	ErrInvalidSpeaker = errors.New("invalid speaker")
)

// SourceError is a runtime failure reported by a source.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
