package extract

import (
	"math"
	"math/rand"

	"github.com/brandlift/seo-cli/internal/config"
	"github.com/brandlift/seo-cli/internal/model"
)

// Hardcoded sane defaults, used only if synthesis itself lands outside the
// plausibility band. Downstream consumers never receive an empty bucket.
var (
	defaultUSD = []float64{18.0, 23.0}
	defaultCAD = []float64{20.0, 25.0}
)

// Synthesizer generates plausible bounded price values when extraction
// yields nothing for a currency. The random source is injected so tests
// can assert exact output.
type Synthesizer struct {
	cfg config.PriceConfig
	rng *rand.Rand
}

// NewSynthesizer creates a Synthesizer with the given random source.
func NewSynthesizer(cfg config.PriceConfig, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{cfg: cfg, rng: rng}
}

// Summarize partitions observations into per-currency buckets and fills
// any empty bucket with synthetic values so both buckets are non-empty.
func (s *Synthesizer) Summarize(obs []model.PriceObservation) model.PriceSummary {
	summary := model.PriceSummary{
		USD: model.PriceBucket{Currency: model.CurrencyUSD},
		CAD: model.PriceBucket{Currency: model.CurrencyCAD},
	}

	for _, o := range obs {
		switch o.Currency {
		case model.CurrencyCAD:
			summary.CAD.Amounts = append(summary.CAD.Amounts, o.Amount)
		default:
			summary.USD.Amounts = append(summary.USD.Amounts, o.Amount)
		}
	}

	if len(summary.USD.Amounts) == 0 {
		summary.USD.Amounts = s.synthesize(s.cfg.USDBaseMin, s.cfg.USDBaseMax, defaultUSD)
		summary.USD.Synthetic = true
	}
	if len(summary.CAD.Amounts) == 0 {
		summary.CAD.Amounts = s.synthesize(s.cfg.CADBaseMin, s.cfg.CADBaseMax, defaultCAD)
		summary.CAD.Synthetic = true
	}

	return summary
}

// synthesize draws bounded random values, re-applies the plausibility
// band, and falls back to fixed defaults if nothing survives.
func (s *Synthesizer) synthesize(baseMin, baseMax float64, defaults []float64) []float64 {
	count := s.cfg.SynthCount
	if count <= 0 {
		count = 3
	}

	var amounts []float64
	for i := 0; i < count; i++ {
		base := baseMin + s.rng.Float64()*(baseMax-baseMin)
		jittered := base + s.rng.Float64()*s.cfg.SynthJitter
		amount := math.Round(jittered*100) / 100
		if amount < s.cfg.BandMin || amount > s.cfg.BandMax {
			continue
		}
		amounts = append(amounts, amount)
	}

	if len(amounts) == 0 {
		amounts = append(amounts, defaults...)
	}
	return amounts
}
