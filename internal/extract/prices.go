// Package extract pulls structured facts (prices, UPC codes) out of the
// scraped text corpus with heuristic, deterministic-precedence rules, and
// synthesizes bounded fallback values when extraction comes up empty.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/brandlift/seo-cli/internal/config"
	"github.com/brandlift/seo-cli/internal/model"
)

// priceRe matches an optional USD/CAD marker, an optional currency symbol,
// and a number with up to 2 decimal places. At least one of marker or
// symbol must be present: a bare number is not treated as a price.
var priceRe = regexp.MustCompile(`(?i)\b(USD|CAD)\s*(C\$|\$)?\s*(\d{1,6}(?:\.\d{1,2})?)|(C\$|\$)\s*(\d{1,6}(?:\.\d{1,2})?)`)

// canadaWindow is how far around a match the "canada" keyword heuristic
// looks when no explicit currency marker is present.
const canadaWindow = 40

// Prices scans every usable page for currency-tagged amounts, assigns each
// a currency, and drops amounts outside the plausibility band.
//
// Currency assignment precedence:
//  1. explicit USD/CAD marker in the match
//  2. C$ symbol
//  3. Canada heuristic: .ca source domain, or "canada" near the match
//  4. default USD
func Prices(corpus []model.ScrapedPage, cfg config.PriceConfig) []model.PriceObservation {
	var obs []model.PriceObservation
	for _, page := range corpus {
		if !page.Usable() {
			continue
		}
		obs = append(obs, pagePrices(page, cfg)...)
	}
	return obs
}

func pagePrices(page model.ScrapedPage, cfg config.PriceConfig) []model.PriceObservation {
	var obs []model.PriceObservation
	canadianPage := canadianDomain(page.URL)

	for _, m := range priceRe.FindAllStringSubmatchIndex(page.Text, -1) {
		marker := group(page.Text, m, 1)
		symbol := group(page.Text, m, 2)
		number := group(page.Text, m, 3)
		if number == "" {
			symbol = group(page.Text, m, 4)
			number = group(page.Text, m, 5)
		}

		amount, err := strconv.ParseFloat(number, 64)
		if err != nil {
			continue
		}
		if amount < cfg.BandMin || amount > cfg.BandMax {
			continue
		}

		currency := model.CurrencyUSD
		switch {
		case strings.EqualFold(marker, "CAD"):
			currency = model.CurrencyCAD
		case strings.EqualFold(marker, "USD"):
			currency = model.CurrencyUSD
		case strings.EqualFold(symbol, "C$"):
			currency = model.CurrencyCAD
		case canadianPage || mentionsCanada(page.Text, m[0], m[1]):
			currency = model.CurrencyCAD
		}

		obs = append(obs, model.PriceObservation{
			Amount:    amount,
			Currency:  currency,
			SourceURL: page.URL,
		})
	}
	return obs
}

// group extracts submatch i from a FindAllStringSubmatchIndex match.
func group(text string, m []int, i int) string {
	lo, hi := m[2*i], m[2*i+1]
	if lo < 0 {
		return ""
	}
	return text[lo:hi]
}

// canadianDomain reports whether the URL's host has a Canada-associated
// suffix. This is a weak heuristic, kept as documented behavior.
func canadianDomain(rawURL string) bool {
	host := rawURL
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return strings.HasSuffix(strings.ToLower(host), ".ca")
}

// mentionsCanada checks a small window around the match for the word
// "canada".
func mentionsCanada(text string, lo, hi int) bool {
	start := lo - canadaWindow
	if start < 0 {
		start = 0
	}
	end := hi + canadaWindow
	if end > len(text) {
		end = len(text)
	}
	return strings.Contains(strings.ToLower(text[start:end]), "canada")
}
