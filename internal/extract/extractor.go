package extract

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/brandlift/seo-cli/internal/config"
	"github.com/brandlift/seo-cli/internal/model"
)

// Extractor runs all fact extraction over a scraped corpus.
type Extractor struct {
	priceCfg config.PriceConfig
	upcCfg   config.UPCConfig
	synth    *Synthesizer
	rng      *rand.Rand
}

// New creates an Extractor. The random source feeds both price synthesis
// and UPC synthesis; pass a seeded source in tests.
func New(priceCfg config.PriceConfig, upcCfg config.UPCConfig, rng *rand.Rand) *Extractor {
	return &Extractor{
		priceCfg: priceCfg,
		upcCfg:   upcCfg,
		synth:    NewSynthesizer(priceCfg, rng),
		rng:      rng,
	}
}

// Extract produces the price summary and product code for a corpus.
// Extraction absence is recovered via fallback synthesis and is never an
// error.
func (e *Extractor) Extract(corpus []model.ScrapedPage) (model.PriceSummary, string) {
	obs := Prices(corpus, e.priceCfg)
	summary := e.synth.Summarize(obs)
	upc := UPC(corpus, e.upcCfg, e.rng)

	zap.L().Info("extract: corpus processed",
		zap.Int("observations", len(obs)),
		zap.Int("usd_amounts", len(summary.USD.Amounts)),
		zap.Int("cad_amounts", len(summary.CAD.Amounts)),
		zap.Bool("usd_synthetic", summary.USD.Synthetic),
		zap.Bool("cad_synthetic", summary.CAD.Synthetic),
		zap.String("upc", upc),
	)
	return summary, upc
}
