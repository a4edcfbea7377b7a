package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/speechwatch/core"
	"github.com/poiesic/speechwatch/patterns"
)

const (
	// DefaultMaxQuotes caps the number of quotes kept per transcript.
	// WithMaxQuotes can only lower it.
	DefaultMaxQuotes = core.MaxQuotesPerTranscript

	// MinCategories is the number of distinct topic labels that makes a
	// sentence worth keeping when it carries no rhetoric label.
	MinCategories = 2
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Extractor turns transcript text into labelled quotes.
type Extractor struct {
	table     *patterns.Table
	maxQuotes int
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithMaxQuotes lowers the per-transcript quote cap. n must be in
// [1, DefaultMaxQuotes].
func WithMaxQuotes(n int) Option {
	return func(e *Extractor) error {
		if n < 1 || n > DefaultMaxQuotes {
			return fmt.Errorf("%w: max quotes %d", ErrInvalidBounds, n)
		}
		e.maxQuotes = n
		return nil
	}
}

// WithPoolSize sets the worker pool size used by Annotate.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Extractor) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// New creates an Extractor for the given pattern table.
// Call Release when the extractor is no longer needed.
func New(table *patterns.Table, opts ...Option) (*Extractor, error) {
	if table == nil {
		return nil, ErrPatternTableRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		table:     table,
		maxQuotes: DefaultMaxQuotes,
		pool:      pool,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Release frees the worker pool. The extractor must not be used afterwards.
func (e *Extractor) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Extract returns the quotes worth keeping from t.FullText. It does not look
// at or modify t.ExtractedQuotes. An empty body yields an empty, non-nil slice.
func (e *Extractor) Extract(t core.Transcript) ([]core.Quote, error) {
	if strings.TrimSpace(t.ID) == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidTranscript, core.ErrEmptyID)
	}

	quotes := []core.Quote{}
	if t.FullText == "" {
		return quotes, nil
	}

	for _, segment := range SplitSentences(t.FullText) {
		n := utf8.RuneCountInString(segment)
		if n < core.MinQuoteLength || n > core.MaxQuoteLength {
			continue
		}

		categories, rhetoric := e.table.Match(segment)
		if len(rhetoric) == 0 && len(categories) < MinCategories {
			continue
		}

		quotes = append(quotes, core.Quote{
			ID:         fmt.Sprintf("%s-q%d", t.ID, len(quotes)),
			Text:       segment,
			Categories: nonNil(categories),
			Rhetoric:   nonNil(rhetoric),
			FactCheck:  core.UnverifiedFactCheck(),
		})
		if len(quotes) == e.maxQuotes {
			break
		}
	}

	return quotes, nil
}

// SplitSentences splits text on runs of '.', '!' and '?' and trims each
// segment. Empty segments are dropped.
func SplitSentences(text string) []string {
	parts := sentenceBreak.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AnnotateResult summarizes one Annotate call.
type AnnotateResult struct {
	Processed int // transcripts extracted in this call
	Skipped   int // transcripts that were already processed
	Failed    int // transcripts left unprocessed after an error
	Quotes    int // quotes produced in this call
}

// Annotate extracts quotes for every transcript in the slice that has not been
// processed yet, storing them in place. Already processed transcripts are left
// untouched. A transcript whose extraction fails stays unprocessed so a later
// run can retry it. Cancellation stops scheduling new work; transcripts not
// reached stay unprocessed.
func (e *Extractor) Annotate(ctx context.Context, transcripts []core.Transcript) AnnotateResult {
	type outcome struct {
		quotes []core.Quote
		err    error
		done   bool
	}

	outcomes := make([]outcome, len(transcripts))
	var wg sync.WaitGroup
	var res AnnotateResult

	for i := range transcripts {
		if transcripts[i].Processed() {
			res.Skipped++
			continue
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = outcome{err: fmt.Errorf("%w: %v", ErrExtractionPanic, r), done: true}
				}
			}()
			quotes, err := e.Extract(transcripts[i])
			outcomes[i] = outcome{quotes: quotes, err: err, done: true}
		})
		if err != nil {
			wg.Done()
			outcomes[i] = outcome{err: err, done: true}
		}
	}
	wg.Wait()

	for i := range outcomes {
		o := outcomes[i]
		if !o.done {
			continue
		}
		t := &transcripts[i]
		if o.err != nil {
			res.Failed++
			e.logger.Error("quote extraction failed", "transcript", t.ID, "err", o.err)
			continue
		}
		t.SetQuotes(o.quotes)
		res.Processed++
		res.Quotes += len(o.quotes)
		e.logger.Debug("extracted quotes", "transcript", t.ID, "speaker", t.Speaker, "quotes", len(o.quotes))
	}

	return res
}

func nonNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}
