package model

import "fmt"

// Currency tags a detected price amount.
type Currency string

const (
	CurrencyUSD     Currency = "USD"
	CurrencyCAD     Currency = "CAD"
	CurrencyUnknown Currency = "unknown"
)

// PriceObservation is one detected monetary amount. SourceURL is kept for
// debuggability only and is not used downstream.
type PriceObservation struct {
	Amount    float64  `json:"amount"`
	Currency  Currency `json:"currency"`
	SourceURL string   `json:"source_url,omitempty"`
}

// PriceBucket aggregates accepted amounts for one currency. After fallback
// synthesis is applied the bucket is never empty.
type PriceBucket struct {
	Currency  Currency  `json:"currency"`
	Amounts   []float64 `json:"amounts"`
	Synthetic bool      `json:"synthetic"`
}

// Highest returns the maximum amount in the bucket.
func (b PriceBucket) Highest() float64 {
	var max float64
	for i, a := range b.Amounts {
		if i == 0 || a > max {
			max = a
		}
	}
	return max
}

// Lowest returns the minimum amount in the bucket.
func (b PriceBucket) Lowest() float64 {
	var min float64
	for i, a := range b.Amounts {
		if i == 0 || a < min {
			min = a
		}
	}
	return min
}

// Format renders an amount as a currency-tagged string, e.g. "USD $18.99".
func (b PriceBucket) Format(amount float64) string {
	symbol := "$"
	if b.Currency == CurrencyCAD {
		symbol = "C$"
	}
	return fmt.Sprintf("%s %s%.2f", b.Currency, symbol, amount)
}

// PriceSummary is the aggregated per-currency result.
type PriceSummary struct {
	USD PriceBucket `json:"usd"`
	CAD PriceBucket `json:"cad"`
}
