package recipe

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/ladle/fetcher"
	"github.com/use-agent/ladle/models"
)

// Outcome is the result of a full pipeline run.
type Outcome struct {
	Extraction

	// StatusCode and FinalURL come from the page fetch.
	StatusCode int
	FinalURL   string

	// RawHTML is the fetched document, kept so callers can render the
	// "page" note format without refetching.
	RawHTML string

	// FetchMs and ExtractMs break down where the time went.
	FetchMs   int64
	ExtractMs int64
}

// Pipeline runs one clip end to end: fetch, optional selector scoping,
// structured extraction, heuristic fallback. Linear, no retries; every
// failure path returns a *models.ClipError.
type Pipeline struct {
	fetcher   *fetcher.Fetcher
	extractor *Extractor
}

// NewPipeline wires a Pipeline from its two stages.
func NewPipeline(f *fetcher.Fetcher, e *Extractor) *Pipeline {
	return &Pipeline{fetcher: f, extractor: e}
}

// Run executes the pipeline for one URL. timeout bounds the fetch (0 means
// the configured default); cssSelector, when non-empty, restricts extraction
// to the matched elements' outer HTML.
func (p *Pipeline) Run(ctx context.Context, url string, timeout time.Duration, cssSelector string) (*Outcome, error) {
	fetchStart := time.Now()
	page, err := p.fetcher.Fetch(ctx, url, timeout)
	fetchMs := time.Since(fetchStart).Milliseconds()
	if err != nil {
		return nil, err
	}

	extractStart := time.Now()
	rawHTML := string(page.Body)

	scoped := rawHTML
	if cssSelector != "" {
		scoped, err = ScopeHTML(rawHTML, cssSelector)
		if err != nil {
			return nil, models.NewClipError(models.ErrCodeInvalidInput,
				"invalid CSS selector", err)
		}
	}

	ext, err := p.extractor.Extract(scoped)
	extractMs := time.Since(extractStart).Milliseconds()
	if err != nil {
		return nil, err
	}

	slog.Debug("extraction complete",
		"url", url,
		"source", ext.Source,
		"ingredients", len(ext.Ingredients),
		"fetch_ms", fetchMs,
		"extract_ms", extractMs,
	)

	return &Outcome{
		Extraction: *ext,
		StatusCode: page.StatusCode,
		FinalURL:   page.FinalURL,
		RawHTML:    rawHTML,
		FetchMs:    fetchMs,
		ExtractMs:  extractMs,
	}, nil
}
