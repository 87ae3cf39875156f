package scrape

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/brandlift/seo-cli/internal/cache"
	"github.com/brandlift/seo-cli/internal/config"
	"github.com/brandlift/seo-cli/internal/model"
)

// LinkDiscoverer resolves one query variant into candidate URLs.
type LinkDiscoverer interface {
	Discover(ctx context.Context, query string) []string
}

// Orchestrator fans page fetching out across all candidate URLs with
// bounded concurrency and collects every outcome, partial failures
// included. One bad URL never aborts the batch.
type Orchestrator struct {
	fetcher   Fetcher
	relevance *RelevanceFilter
	pages     *cache.PageCache // optional
	cfg       config.ScrapeConfig
}

// NewOrchestrator creates an Orchestrator. The page cache may be nil, in
// which case every URL is fetched live.
func NewOrchestrator(f Fetcher, rel *RelevanceFilter, pages *cache.PageCache, cfg config.ScrapeConfig) *Orchestrator {
	return &Orchestrator{
		fetcher:   f,
		relevance: rel,
		pages:     pages,
		cfg:       cfg,
	}
}

// DiscoverPlan runs every query variant through the discoverer
// concurrently and unions the results, deduplicated in variant order.
func (o *Orchestrator) DiscoverPlan(ctx context.Context, d LinkDiscoverer, plan model.QueryPlan) []string {
	perVariant := make([][]string, len(plan.Variants))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency())
	for i, query := range plan.Variants {
		g.Go(func() error {
			perVariant[i] = d.Discover(gCtx, query)
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	var urls []string
	for _, links := range perVariant {
		for _, u := range links {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}
	return urls
}

// ScrapeAll fetches and normalizes every URL concurrently and returns one
// ScrapedPage per input URL, in input order. The whole batch runs under
// the configured wall-clock budget; URLs still pending at the deadline
// resolve to fetch errors.
func (o *Orchestrator) ScrapeAll(ctx context.Context, urls []string) []model.ScrapedPage {
	if budget := o.cfg.BudgetSecs; budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(budget)*time.Second)
		defer cancel()
	}

	results := make([]model.ScrapedPage, len(urls))

	var cacheMu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency())

	for i, u := range urls {
		g.Go(func() error {
			results[i] = o.scrapeOne(gCtx, u, &cacheMu)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (o *Orchestrator) scrapeOne(ctx context.Context, url string, cacheMu *sync.Mutex) model.ScrapedPage {
	if o.pages != nil {
		if cached, ok := o.pages.Get(ctx, url); ok {
			zap.L().Debug("scrape: cache hit", zap.String("url", url))
			return *cached
		}
	}

	fetchCtx := ctx
	if t := o.cfg.FetchTimeoutSecs; t > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, time.Duration(t)*time.Second)
		defer cancel()
	}

	page, err := o.fetcher.Fetch(fetchCtx, url)
	if err != nil {
		zap.L().Debug("scrape: fetch failed",
			zap.String("fetcher", o.fetcher.Name()),
			zap.String("url", url),
			zap.Error(err),
		)
		return model.ScrapedPage{
			URL:    url,
			Status: model.PageFetchError,
			Error:  err.Error(),
		}
	}

	if o.relevance != nil {
		if rejectErr := o.relevance.Check(page); rejectErr != nil {
			zap.L().Debug("scrape: page rejected",
				zap.String("url", url),
				zap.String("reason", rejectErr.Error()),
			)
			return model.ScrapedPage{
				URL:    url,
				Title:  page.Title,
				Status: model.PageRejected,
				Error:  rejectErr.Error(),
			}
		}
	}

	result := model.ScrapedPage{
		URL:    url,
		Title:  page.Title,
		Text:   page.Text,
		Status: model.PageOK,
	}

	if o.pages != nil {
		cacheMu.Lock()
		if putErr := o.pages.Put(ctx, result); putErr != nil {
			zap.L().Warn("scrape: cache store failed", zap.String("url", url), zap.Error(putErr))
		}
		cacheMu.Unlock()
	}

	return result
}

func (o *Orchestrator) concurrency() int {
	if o.cfg.Concurrency > 0 {
		return o.cfg.Concurrency
	}
	return 4
}

// Stats tallies a finished corpus.
func Stats(corpus []model.ScrapedPage) model.CorpusStats {
	stats := model.CorpusStats{Attempted: len(corpus)}
	for _, p := range corpus {
		switch p.Status {
		case model.PageOK:
			stats.Fetched++
		case model.PageRejected:
			stats.Rejected++
		case model.PageFetchError:
			stats.Failed++
		}
	}
	return stats
}
