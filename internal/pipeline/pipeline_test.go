package pipeline

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brandlift/seo-cli/internal/config"
	"github.com/brandlift/seo-cli/internal/extract"
	"github.com/brandlift/seo-cli/internal/model"
	"github.com/brandlift/seo-cli/internal/scrape"
	"github.com/brandlift/seo-cli/pkg/anthropic"
)

type fakeDiscoverer struct {
	links map[string][]string
}

func (d *fakeDiscoverer) Discover(_ context.Context, query string) []string {
	return d.links[query]
}

type fakeFetcher struct {
	pages map[string]*scrape.Page
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*scrape.Page, error) {
	page, ok := f.pages[url]
	if !ok {
		return nil, eris.New("http: connection refused")
	}
	return page, nil
}

func (f *fakeFetcher) Name() string { return "fake" }

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		Scrape: config.ScrapeConfig{
			FetchTimeoutSecs: 5,
			Concurrency:      4,
			BudgetSecs:       30,
		},
		Relevance: config.RelevanceConfig{
			Keywords:   []string{"price", "buy", "add to cart", "mrp", "product", "brand", "description"},
			MinHits:    2,
			MinBodyLen: 100,
		},
		Price: config.PriceConfig{
			BandMin:     5,
			BandMax:     500,
			USDBaseMin:  12,
			USDBaseMax:  35,
			CADBaseMin:  15,
			CADBaseMax:  45,
			SynthCount:  3,
			SynthJitter: 3,
		},
		Anthropic: config.AnthropicConfig{
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 2048,
		},
	}
}

// productPageText builds body text that clears the relevance gate.
func productPageText(extra string) string {
	base := "Buy this product from a trusted brand. Price shown at checkout. " + extra
	if len(base) < 120 {
		base += strings.Repeat(" great value", (120-len(base))/12+1)
	}
	return base
}

func newTestPipeline(cfg *config.Config, disc scrape.LinkDiscoverer, fetcher scrape.Fetcher, ai anthropic.Client) *Pipeline {
	orch := scrape.NewOrchestrator(fetcher, scrape.NewRelevanceFilter(cfg.Relevance), nil, cfg.Scrape)
	extractor := extract.New(cfg.Price, cfg.UPC, rand.New(rand.NewSource(1)))
	return New(cfg, disc, orch, extractor, ai)
}

func TestResearch_EndToEnd(t *testing.T) {
	cfg := testConfig()
	product := model.Product{Name: "Acme Shampoo", PrimaryKeywords: []string{"gentle"}}

	disc := &fakeDiscoverer{links: map[string][]string{
		"Acme Shampoo price":           {"https://a.example.com", "https://b.example.com"},
		"Acme Shampoo ingredients UPC": {"https://b.example.com", "https://c.example.com"},
	}}
	fetcher := &fakeFetcher{pages: map[string]*scrape.Page{
		"https://a.example.com": {
			URL:   "https://a.example.com",
			Title: "Acme Shampoo",
			Text:  productPageText("Only $19.99 while supplies last."),
		},
		"https://b.example.com": {
			URL:   "https://b.example.com",
			Title: "Acme Shampoo 16oz",
			Text:  productPageText("UPC: 112233445566 printed under the barcode."),
		},
		// c.example.com missing: fetch fails.
	}}

	p := newTestPipeline(cfg, disc, fetcher, nil)
	rec, err := p.Research(context.Background(), product)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.RunID)
	assert.Equal(t, product, rec.Product)

	// Duplicate URL collapsed: 3 unique URLs attempted.
	assert.Equal(t, 3, rec.Stats.Attempted)
	assert.Equal(t, 2, rec.Stats.Fetched)
	assert.Equal(t, 1, rec.Stats.Failed)

	assert.Equal(t, "112233445566", rec.UPC)
	assert.Equal(t, []float64{19.99}, rec.Prices.USD.Amounts)
	assert.False(t, rec.Prices.USD.Synthetic)
	// No CAD observations: synthesized, never empty.
	assert.True(t, rec.Prices.CAD.Synthetic)
	assert.NotEmpty(t, rec.Prices.CAD.Amounts)
}

func TestResearch_InvalidProduct(t *testing.T) {
	p := newTestPipeline(testConfig(), &fakeDiscoverer{}, &fakeFetcher{}, nil)
	_, err := p.Research(context.Background(), model.Product{Name: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product name is required")
}

func TestResearch_NoLinksStillSynthesizes(t *testing.T) {
	p := newTestPipeline(testConfig(), &fakeDiscoverer{}, &fakeFetcher{}, nil)
	rec, err := p.Research(context.Background(), model.Product{Name: "Acme Shampoo"})
	require.NoError(t, err)

	assert.Zero(t, rec.Stats.Attempted)
	assert.NotEmpty(t, rec.UPC)
	assert.NotEmpty(t, rec.Prices.USD.Amounts)
	assert.NotEmpty(t, rec.Prices.CAD.Amounts)
}

func TestGenerate_Success(t *testing.T) {
	cfg := testConfig()
	ai := new(mockAnthropicClient)
	ai.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == cfg.Anthropic.Model && strings.Contains(req.Prompt, "Acme Shampoo")
	})).Return(&anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: wellFormedReply}},
	}, nil)

	p := newTestPipeline(cfg, &fakeDiscoverer{}, &fakeFetcher{}, ai)
	content, err := p.Generate(context.Background(), model.Product{Name: "Acme Shampoo"})
	require.NoError(t, err)

	assert.Equal(t, "Acme Shampoo 16oz | Gentle Daily Cleanser", content.MetaTitle)
	assert.Contains(t, content.Ingredients, "Aloe Vera")
	assert.NotEmpty(t, content.UPC)
	assert.Contains(t, content.HighestPriceUSD, "USD $")
	assert.Contains(t, content.LowestPriceCAD, "CAD C$")

	ai.AssertExpectations(t)
}

func TestGenerate_ModelFailureDegrades(t *testing.T) {
	ai := new(mockAnthropicClient)
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, eris.New("anthropic: create message: 400 invalid request"))

	p := newTestPipeline(testConfig(), &fakeDiscoverer{}, &fakeFetcher{}, ai)
	content, err := p.Generate(context.Background(), model.Product{Name: "Acme Shampoo"})
	require.NoError(t, err)

	assert.Equal(t, model.GenerationFailed, content.MetaTitle)
	assert.Equal(t, model.GenerationFailed, content.Description)
	assert.Equal(t, model.GenerationFailed, content.Ingredients)
	// Extraction-derived fields survive a generation failure.
	assert.NotEmpty(t, content.UPC)
	assert.NotEqual(t, model.GenerationFailed, content.HighestPriceUSD)
}

func TestResearch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestPipeline(testConfig(), &fakeDiscoverer{}, &fakeFetcher{}, nil)
	_, err := p.Research(ctx, model.Product{Name: "Acme Shampoo"})
	require.Error(t, err)
}
