package corpus

import "errors"

var (
	// ErrMalformedCorpus indicates the persisted corpus does not match the schema.
	ErrMalformedCorpus = errors.New("malformed corpus file")

	// ErrNilCorpus is returned when saving a nil corpus.
	ErrNilCorpus = errors.New("corpus is nil")
)
