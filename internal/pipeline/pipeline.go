// Package pipeline wires discovery, scraping, extraction, and content
// generation into the two end-to-end operations the CLI exposes.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/brandlift/seo-cli/internal/config"
	"github.com/brandlift/seo-cli/internal/extract"
	"github.com/brandlift/seo-cli/internal/model"
	"github.com/brandlift/seo-cli/internal/retry"
	"github.com/brandlift/seo-cli/internal/scrape"
	"github.com/brandlift/seo-cli/pkg/anthropic"
)

// Pipeline orchestrates a research run: query planning, link discovery,
// concurrent scraping, fact extraction, and optional content generation.
type Pipeline struct {
	cfg       *config.Config
	disc      scrape.LinkDiscoverer
	orch      *scrape.Orchestrator
	extractor *extract.Extractor
	anthropic anthropic.Client
}

// New creates a Pipeline. The anthropic client may be nil when only
// Research is used.
func New(
	cfg *config.Config,
	disc scrape.LinkDiscoverer,
	orch *scrape.Orchestrator,
	extractor *extract.Extractor,
	aiClient anthropic.Client,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		disc:      disc,
		orch:      orch,
		extractor: extractor,
		anthropic: aiClient,
	}
}

// Research runs the scrape-and-extract core for one product. Individual
// page failures are recorded in the corpus, never raised; the only error
// cases are an invalid product or a context cancelled before work starts.
func (p *Pipeline) Research(ctx context.Context, product model.Product) (*model.ResearchRecord, error) {
	if err := product.Validate(); err != nil {
		return nil, eris.Wrap(err, "pipeline: invalid product")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: research aborted")
	}

	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID), zap.String("product", product.Name))

	plan := model.BuildQueryPlan(product)
	log.Info("pipeline: starting research", zap.Strings("queries", plan.Variants))

	urls := p.orch.DiscoverPlan(ctx, p.disc, plan)
	if len(urls) == 0 {
		log.Warn("pipeline: no links discovered, extraction will synthesize")
	}

	corpus := p.orch.ScrapeAll(ctx, urls)
	prices, upc := p.extractor.Extract(corpus)

	rec := &model.ResearchRecord{
		RunID:   runID,
		Product: product,
		Corpus:  corpus,
		Prices:  prices,
		UPC:     upc,
		Stats:   scrape.Stats(corpus),
	}

	log.Info("pipeline: research complete",
		zap.Int("attempted", rec.Stats.Attempted),
		zap.Int("fetched", rec.Stats.Fetched),
		zap.Int("rejected", rec.Stats.Rejected),
		zap.Int("failed", rec.Stats.Failed),
	)
	return rec, nil
}

// Generate runs Research and then a single model call to author the SEO
// sections. A generation failure does not fail the run: the record comes
// back with every LLM-authored section set to the failure marker while
// extraction-derived fields survive.
func (p *Pipeline) Generate(ctx context.Context, product model.Product) (*model.SEOContent, error) {
	rec, err := p.Research(ctx, product)
	if err != nil {
		return nil, err
	}

	content := &model.SEOContent{
		RunID:           rec.RunID,
		UPC:             rec.UPC,
		HighestPriceUSD: rec.Prices.USD.Format(rec.Prices.USD.Highest()),
		LowestPriceUSD:  rec.Prices.USD.Format(rec.Prices.USD.Lowest()),
		HighestPriceCAD: rec.Prices.CAD.Format(rec.Prices.CAD.Highest()),
		LowestPriceCAD:  rec.Prices.CAD.Format(rec.Prices.CAD.Lowest()),
	}

	log := zap.L().With(zap.String("run_id", rec.RunID), zap.String("product", product.Name))

	req := anthropic.MessageRequest{
		Model:     p.cfg.Anthropic.Model,
		MaxTokens: p.cfg.Anthropic.MaxTokens,
		System:    systemPrompt,
		Prompt:    BuildPrompt(product, rec),
	}
	resp, err := retry.DoVal(ctx, retry.DefaultConfig(), "generate content",
		func(ctx context.Context) (*anthropic.MessageResponse, error) {
			return p.anthropic.CreateMessage(ctx, req)
		})
	if err != nil {
		log.Error("pipeline: content generation failed", zap.Error(err))
		content.MarkGenerationFailed()
		return content, nil
	}

	resp.Usage.LogCost(p.cfg.Anthropic.Model, "generate")
	ApplySections(content, ParseSections(resp.Text()))

	log.Info("pipeline: content generated",
		zap.Int("meta_title_len", len(content.MetaTitle)),
		zap.Int("description_len", len(content.Description)),
	)
	return content, nil
}
