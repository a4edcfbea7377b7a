// Package source defines the collector interface and the sources that feed
// the corpus.
//
// Collectors fetch and parse remote sites on their own schedule and write
// their output to disk. A TranscriptSource adapts that output to transcript
// records. A Registry holds the sources available to a run and converts
// unavailable or failing sources into empty batches so one broken site never
// aborts the whole run.
package source
