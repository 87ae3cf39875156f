// Package model defines the data types shared across the research pipeline.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Product identifies the consumer product being researched.
type Product struct {
	Name              string   `json:"name"`
	PrimaryKeywords   []string `json:"primary_keywords"`
	SecondaryKeywords []string `json:"secondary_keywords"`
}

// Validate rejects products that cannot form a search query.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return eris.New("model: product name is required")
	}
	return nil
}

// SplitKeywords parses a comma-separated keyword list into trimmed,
// non-empty entries.
func SplitKeywords(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// QueryPlan is an ordered sequence of search query variants. Each variant
// is dispatched independently and may run concurrently.
type QueryPlan struct {
	Variants []string `json:"variants"`
}

// BuildQueryPlan derives query variants from the product name and keyword
// lists to diversify search coverage.
func BuildQueryPlan(p Product) QueryPlan {
	name := strings.TrimSpace(p.Name)
	variants := []string{
		name + " price",
		name + " ingredients UPC",
		name + " review",
	}

	// One broad variant joining the product name with every keyword,
	// matching how a shopper would type the whole thing into a search box.
	terms := append([]string{name}, p.PrimaryKeywords...)
	terms = append(terms, p.SecondaryKeywords...)
	if broad := strings.Join(terms, " "); broad != name {
		variants = append(variants, broad)
	}

	return QueryPlan{Variants: variants}
}
