package scrape

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlift/seo-cli/internal/cache"
	"github.com/brandlift/seo-cli/internal/config"
	"github.com/brandlift/seo-cli/internal/model"
)

// fakeFetcher serves canned pages and errors keyed by URL.
type fakeFetcher struct {
	pages map[string]*Page
	errs  map[string]error
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*Page, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if p, ok := f.pages[url]; ok {
		return p, nil
	}
	return nil, eris.Errorf("fake: no fixture for %s", url)
}

func productText(s string) string {
	return "Buy this product, price listed, " + s + strings.Repeat(" detail", 20)
}

func testScrapeConfig() config.ScrapeConfig {
	return config.ScrapeConfig{FetchTimeoutSecs: 5, Concurrency: 3, BudgetSecs: 30}
}

func TestScrapeAll_PartialFailure(t *testing.T) {
	urls := []string{
		"https://a.example.com", "https://b.example.com", "https://c.example.com",
		"https://d.example.com", "https://e.example.com",
	}
	fetcher := &fakeFetcher{
		pages: map[string]*Page{
			urls[0]: {URL: urls[0], Text: productText("a")},
			urls[2]: {URL: urls[2], Text: productText("c")},
			urls[4]: {URL: urls[4], Text: productText("e")},
		},
		errs: map[string]error{
			urls[1]: eris.New("fake: timeout"),
			urls[3]: eris.New("fake: timeout"),
		},
	}

	o := NewOrchestrator(fetcher, NewRelevanceFilter(testRelevanceConfig()), nil, testScrapeConfig())
	corpus := o.ScrapeAll(context.Background(), urls)

	require.Len(t, corpus, 5)
	stats := Stats(corpus)
	assert.Equal(t, 5, stats.Attempted)
	assert.Equal(t, 3, stats.Fetched)
	assert.Equal(t, 2, stats.Failed)
	assert.Equal(t, 0, stats.Rejected)

	// Results are attributed to their originating URL, in input order.
	for i, p := range corpus {
		assert.Equal(t, urls[i], p.URL)
	}
	assert.Equal(t, model.PageFetchError, corpus[1].Status)
	assert.Contains(t, corpus[1].Error, "timeout")
}

func TestScrapeAll_RecordsRejections(t *testing.T) {
	urls := []string{"https://thin.example.com", "https://good.example.com"}
	fetcher := &fakeFetcher{
		pages: map[string]*Page{
			urls[0]: {URL: urls[0], Text: "too short"},
			urls[1]: {URL: urls[1], Text: productText("good")},
		},
	}

	o := NewOrchestrator(fetcher, NewRelevanceFilter(testRelevanceConfig()), nil, testScrapeConfig())
	corpus := o.ScrapeAll(context.Background(), urls)

	assert.Equal(t, model.PageRejected, corpus[0].Status)
	assert.NotEmpty(t, corpus[0].Error)
	assert.Equal(t, model.PageOK, corpus[1].Status)
}

func TestScrapeAll_UsesCache(t *testing.T) {
	pages, err := cache.Open(filepath.Join(t.TempDir(), "c.db"), time.Hour)
	require.NoError(t, err)
	defer pages.Close()

	url := "https://cached.example.com"
	require.NoError(t, pages.Put(context.Background(), model.ScrapedPage{
		URL: url, Text: productText("cached"), Status: model.PageOK,
	}))

	// The fetcher has no fixture for the URL: a live fetch would fail.
	o := NewOrchestrator(&fakeFetcher{}, nil, pages, testScrapeConfig())
	corpus := o.ScrapeAll(context.Background(), []string{url})

	require.Len(t, corpus, 1)
	assert.Equal(t, model.PageOK, corpus[0].Status)
	assert.Contains(t, corpus[0].Text, "cached")
}

// fakeDiscoverer returns canned links per query.
type fakeDiscoverer struct {
	links map[string][]string
}

func (f *fakeDiscoverer) Discover(_ context.Context, query string) []string {
	return f.links[query]
}

func TestDiscoverPlan_UnionsAndDeduplicates(t *testing.T) {
	d := &fakeDiscoverer{links: map[string][]string{
		"x price":           {"https://a.example.com", "https://b.example.com"},
		"x ingredients UPC": {"https://b.example.com", "https://c.example.com"},
		"x review":          nil, // discovery failure for this variant
	}}
	plan := model.QueryPlan{Variants: []string{"x price", "x ingredients UPC", "x review"}}

	o := NewOrchestrator(&fakeFetcher{}, nil, nil, testScrapeConfig())
	urls := o.DiscoverPlan(context.Background(), d, plan)

	assert.Equal(t, []string{
		"https://a.example.com",
		"https://b.example.com",
		"https://c.example.com",
	}, urls)
}
