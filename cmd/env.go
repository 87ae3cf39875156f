package main

import (
	"math/rand"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/brandlift/seo-cli/internal/cache"
	"github.com/brandlift/seo-cli/internal/extract"
	"github.com/brandlift/seo-cli/internal/pipeline"
	"github.com/brandlift/seo-cli/internal/scrape"
	"github.com/brandlift/seo-cli/internal/search"
	"github.com/brandlift/seo-cli/pkg/anthropic"
)

// pipelineEnv bundles the pipeline with the resources that need explicit
// teardown: the headless browser and the sqlite page cache.
type pipelineEnv struct {
	Pipeline *pipeline.Pipeline
	renderer *search.BrowserRenderer
	pages    *cache.PageCache
}

func (e *pipelineEnv) Close() {
	if e.renderer != nil {
		e.renderer.Close()
	}
	if e.pages != nil {
		if err := e.pages.Close(); err != nil {
			zap.L().Warn("cache close failed", zap.Error(err))
		}
	}
}

// initPipeline builds the full pipeline from configuration. The page cache
// is best-effort: a cache that fails to open degrades to live fetching.
func initPipeline() (*pipelineEnv, error) {
	renderer, err := search.NewBrowserRenderer(cfg.Search)
	if err != nil {
		return nil, eris.Wrap(err, "init browser renderer")
	}
	disc := search.NewDiscoverer(renderer, cfg.Search)

	var pages *cache.PageCache
	if cfg.Cache.Path != "" {
		pages, err = cache.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			zap.L().Warn("cache open failed, fetching live", zap.Error(err))
			pages = nil
		}
	}

	fetcher := scrape.NewHTTPFetcher(
		time.Duration(cfg.Scrape.FetchTimeoutSecs)*time.Second,
		cfg.Scrape.RequestsPerSec,
	)
	orch := scrape.NewOrchestrator(fetcher, scrape.NewRelevanceFilter(cfg.Relevance), pages, cfg.Scrape)
	extractor := extract.New(cfg.Price, cfg.UPC, rand.New(rand.NewSource(time.Now().UnixNano())))

	var aiClient anthropic.Client
	if cfg.Anthropic.Key != "" {
		aiClient = anthropic.NewClient(cfg.Anthropic.Key)
	}

	return &pipelineEnv{
		Pipeline: pipeline.New(cfg, disc, orch, extractor, aiClient),
		renderer: renderer,
		pages:    pages,
	}, nil
}

// requireAnthropicKey guards commands that call the model.
func requireAnthropicKey() error {
	if cfg.Anthropic.Key == "" {
		return eris.New("anthropic api key is required (set SEOCLI_ANTHROPIC_KEY or anthropic.key in config.yaml)")
	}
	return nil
}
