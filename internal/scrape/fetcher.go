// Package scrape fetches candidate product pages concurrently and
// normalizes them into a plain-text corpus, tolerating per-URL failure.
package scrape

import "context"

// Page is the successfully fetched, normalized content of one URL.
type Page struct {
	URL   string
	Title string
	Text  string
}

// Fetcher retrieves the text content of a single URL. Every failure mode
// (timeout, network error, non-success status, block) is returned as an
// error so the orchestrator can record it without aborting the batch.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
	Name() string
}
