package model

// GenerationFailed marks a section whose LLM generation failed. The
// pipeline substitutes this value instead of raising, so callers always
// receive a fully-populated record.
const GenerationFailed = "[generation failed]"

// SEOContent is the final structured product record. The first six fields
// come from the language model reply; UPC and the price fields are carried
// over from extraction and are never LLM-authored.
type SEOContent struct {
	RunID            string `json:"run_id"`
	MetaTitle        string `json:"meta_title"`
	MetaDescription  string `json:"meta_description"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	HowToUse         string `json:"how_to_use"`
	Ingredients      string `json:"ingredients"`
	UPC              string `json:"upc"`
	HighestPriceUSD  string `json:"highest_price_usd"`
	LowestPriceUSD   string `json:"lowest_price_usd"`
	HighestPriceCAD  string `json:"highest_price_cad"`
	LowestPriceCAD   string `json:"lowest_price_cad"`
}

// MarkGenerationFailed fills every LLM-authored section with the failure
// marker, leaving extraction-derived fields intact.
func (c *SEOContent) MarkGenerationFailed() {
	c.MetaTitle = GenerationFailed
	c.MetaDescription = GenerationFailed
	c.ShortDescription = GenerationFailed
	c.Description = GenerationFailed
	c.HowToUse = GenerationFailed
	c.Ingredients = GenerationFailed
}
