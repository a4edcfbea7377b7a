package source

import (
	"context"

	"github.com/poiesic/speechwatch/core"
)

// TranscriptSource produces transcript records for the corpus.
//
// Fetch returns an error wrapping ErrSourceUnavailable when the source has
// nothing to offer, and any other error for a runtime failure. Records
// should carry deterministic IDs (see core.TranscriptID) so repeated runs
// deduplicate.
type TranscriptSource interface {
	Name() string
	Fetch(ctx context.Context) ([]core.Transcript, error)
}
