package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/brandlift/seo-cli/internal/model"
)

// Snippet caps keep the prompt well under the model context window even
// when the scrape returns large product pages.
const (
	maxSnippets   = 6
	maxSnippetLen = 1500
)

const systemPrompt = `You are an e-commerce SEO copywriter. Write accurate, compelling product copy grounded only in the research material provided. Never invent certifications, awards, or medical claims.`

var titleCaser = cases.Title(language.AmericanEnglish)

// DisplayName normalizes a raw product name for prompt and title use.
func DisplayName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// BuildPrompt assembles the single generation prompt from the product and
// its research record.
func BuildPrompt(product model.Product, rec *model.ResearchRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write SEO content for the product %q.\n\n", DisplayName(product.Name))

	keywords := append(append([]string{}, product.PrimaryKeywords...), product.SecondaryKeywords...)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "Target keywords: %s\n\n", strings.Join(keywords, ", "))
	}

	b.WriteString("Facts established by research (use verbatim where relevant):\n")
	fmt.Fprintf(&b, "- UPC: %s\n", rec.UPC)
	fmt.Fprintf(&b, "- Price range (USD): %s to %s\n",
		rec.Prices.USD.Format(rec.Prices.USD.Lowest()),
		rec.Prices.USD.Format(rec.Prices.USD.Highest()))
	fmt.Fprintf(&b, "- Price range (CAD): %s to %s\n\n",
		rec.Prices.CAD.Format(rec.Prices.CAD.Lowest()),
		rec.Prices.CAD.Format(rec.Prices.CAD.Highest()))

	usable := rec.UsablePages()
	if len(usable) > maxSnippets {
		usable = usable[:maxSnippets]
	}
	if len(usable) > 0 {
		b.WriteString("Research snippets:\n")
		for i, page := range usable {
			text := page.Text
			if len(text) > maxSnippetLen {
				text = text[:maxSnippetLen]
			}
			fmt.Fprintf(&b, "[%d] %s\n%s\n\n", i+1, page.URL, text)
		}
	} else {
		b.WriteString("No research pages were usable. Write from general product knowledge and stay conservative.\n\n")
	}

	b.WriteString(`Write the following sections. Start each section with its label alone on one line, exactly as shown:

META TITLE:
A search-result title, 70 characters or fewer.

META DESCRIPTION:
A search-result description, 140 to 160 characters.

SHORT DESCRIPTION:
One or two sentences for category listings.

DESCRIPTION:
Three to five paragraphs of product copy.

HOW TO USE:
Step-by-step usage directions.

INGREDIENTS:
The ingredient list if present in the research snippets, otherwise the most likely ingredients phrased as "typically contains".`)

	return b.String()
}
