package scrape

import (
	"fmt"
	"strings"

	"github.com/brandlift/seo-cli/internal/config"
)

// RelevanceFilter rejects scraped pages that do not look like product
// pages: too little text, or too few commerce keywords in the combined
// title+body text.
type RelevanceFilter struct {
	keywords   []string
	minHits    int
	minBodyLen int
}

// NewRelevanceFilter builds a filter from configuration.
func NewRelevanceFilter(cfg config.RelevanceConfig) *RelevanceFilter {
	keywords := make([]string, 0, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		keywords = append(keywords, strings.ToLower(k))
	}
	return &RelevanceFilter{
		keywords:   keywords,
		minHits:    cfg.MinHits,
		minBodyLen: cfg.MinBodyLen,
	}
}

// Check returns nil when the page passes, or a rejection reason.
func (f *RelevanceFilter) Check(page *Page) error {
	if len(page.Text) < f.minBodyLen {
		return fmt.Errorf("body text too short (%d < %d chars)", len(page.Text), f.minBodyLen)
	}

	combined := strings.ToLower(page.Title + " " + page.Text)
	hits := 0
	for _, k := range f.keywords {
		if strings.Contains(combined, k) {
			hits++
		}
	}
	if hits < f.minHits {
		return fmt.Errorf("only %d of %d required keyword hits", hits, f.minHits)
	}
	return nil
}
