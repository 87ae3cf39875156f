package model

// PageStatus classifies the outcome of one fetch attempt.
type PageStatus string

const (
	// PageOK means the page was fetched, normalized, and accepted.
	PageOK PageStatus = "ok"
	// PageFetchError means the fetch itself failed (network, timeout,
	// non-success status, render failure).
	PageFetchError PageStatus = "fetch_error"
	// PageRejected means the page was fetched but failed the product-page
	// relevance heuristic. Kept distinct from fetch errors for diagnostics.
	PageRejected PageStatus = "rejected"
)

// ScrapedPage is the result of one fetch attempt. Text is present only
// when Status is PageOK; Error is present otherwise.
type ScrapedPage struct {
	URL    string     `json:"url"`
	Title  string     `json:"title,omitempty"`
	Text   string     `json:"text,omitempty"`
	Status PageStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Usable reports whether the page carries text the extractor may consume.
func (p ScrapedPage) Usable() bool {
	return p.Status == PageOK
}

// CorpusStats summarizes a scrape pass so callers can distinguish
// "no URLs found" from "N URLs attempted, all failed".
type CorpusStats struct {
	Attempted int `json:"attempted"`
	Fetched   int `json:"fetched"`
	Rejected  int `json:"rejected"`
	Failed    int `json:"failed"`
}

// ResearchRecord is the output of the scrape-aggregate-extract core.
type ResearchRecord struct {
	RunID   string        `json:"run_id"`
	Product Product       `json:"product"`
	Corpus  []ScrapedPage `json:"corpus"`
	Prices  PriceSummary  `json:"prices"`
	UPC     string        `json:"upc"`
	Stats   CorpusStats   `json:"stats"`
}

// UsablePages returns the accepted corpus entries in input order.
func (r ResearchRecord) UsablePages() []ScrapedPage {
	var out []ScrapedPage
	for _, p := range r.Corpus {
		if p.Usable() {
			out = append(out, p)
		}
	}
	return out
}
