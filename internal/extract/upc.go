package extract

import (
	"math/rand"
	"regexp"

	"github.com/brandlift/seo-cli/internal/config"
	"github.com/brandlift/seo-cli/internal/model"
)

var (
	labeledUPCRe       = regexp.MustCompile(`(?i)\bUPC[:\s#]*([0-9]{8,14})\b`)
	labeledStrictUPCRe = regexp.MustCompile(`(?i)\bUPC[:\s#]*([0-9]{12})\b`)
	standaloneUPCRe    = regexp.MustCompile(`\b[1-9][0-9]{11}\b`)
)

const upcDigits = 12

// UPC returns exactly one product code for the corpus; it never fails.
//
// Preference order, scanning pages in corpus order:
//  1. digits following an explicit "UPC" label (8-14 digits, or exactly 12
//     in strict mode); the first found wins
//  2. any freestanding 12-digit sequence not starting with zero
//  3. a synthesized random 12-digit code with a non-zero leading digit
func UPC(corpus []model.ScrapedPage, cfg config.UPCConfig, rng *rand.Rand) string {
	labeled := labeledUPCRe
	if cfg.Strict {
		labeled = labeledStrictUPCRe
	}

	for _, page := range corpus {
		if !page.Usable() {
			continue
		}
		if m := labeled.FindStringSubmatch(page.Text); m != nil {
			return m[1]
		}
	}

	for _, page := range corpus {
		if !page.Usable() {
			continue
		}
		if m := standaloneUPCRe.FindString(page.Text); m != "" {
			return m
		}
	}

	return synthesizeUPC(rng)
}

// synthesizeUPC builds a random 12-digit code with a non-zero first digit.
func synthesizeUPC(rng *rand.Rand) string {
	digits := make([]byte, upcDigits)
	digits[0] = byte('1' + rng.Intn(9))
	for i := 1; i < upcDigits; i++ {
		digits[i] = byte('0' + rng.Intn(10))
	}
	return string(digits)
}
