package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlift/seo-cli/internal/model"
)

const wellFormedReply = `META TITLE:
Acme Shampoo 16oz | Gentle Daily Cleanser

META DESCRIPTION:
Acme Shampoo cleans gently with aloe and biotin. Free shipping on orders over $25.

SHORT DESCRIPTION:
A gentle daily shampoo for all hair types.

DESCRIPTION:
Acme Shampoo starts with a coconut-derived base.

It rinses clean without stripping.

HOW TO USE:
Apply to wet hair, lather, rinse.

INGREDIENTS:
Water, Sodium Cocoyl Isethionate, Aloe Vera.`

func TestParseSections_WellFormed(t *testing.T) {
	sections := ParseSections(wellFormedReply)
	require.Len(t, sections, 6)
	assert.Equal(t, "Acme Shampoo 16oz | Gentle Daily Cleanser", sections["META TITLE"])
	assert.Equal(t, "A gentle daily shampoo for all hair types.", sections["SHORT DESCRIPTION"])
	assert.Contains(t, sections["DESCRIPTION"], "coconut-derived base")
	assert.Contains(t, sections["DESCRIPTION"], "rinses clean")
	assert.Equal(t, "Apply to wet hair, lather, rinse.", sections["HOW TO USE"])
}

func TestParseSections_MarkdownAndNumberingDrift(t *testing.T) {
	reply := `Here is the content you asked for.

1. **META TITLE:** Acme Shampoo 16oz
2. **META DESCRIPTION**
A gentle cleanser for daily use with aloe.
### SHORT DESCRIPTION
Short and sweet.`

	sections := ParseSections(reply)
	assert.Equal(t, "Acme Shampoo 16oz", sections["META TITLE"])
	assert.Equal(t, "A gentle cleanser for daily use with aloe.", sections["META DESCRIPTION"])
	assert.Equal(t, "Short and sweet.", sections["SHORT DESCRIPTION"])
	// Preamble before the first label is dropped.
	assert.NotContains(t, sections["META TITLE"], "Here is the content")
}

func TestParseSections_MetaDescriptionNotReadAsDescription(t *testing.T) {
	reply := `META DESCRIPTION: For search results.

DESCRIPTION: The long-form copy.`

	sections := ParseSections(reply)
	assert.Equal(t, "For search results.", sections["META DESCRIPTION"])
	assert.Equal(t, "The long-form copy.", sections["DESCRIPTION"])
}

func TestParseSections_BodyLineStartingWithLabelWord(t *testing.T) {
	reply := `DESCRIPTION:
Description of the formula follows in plain terms.
It works.`

	sections := ParseSections(reply)
	// The body sentence beginning with "Description of" is content, not a
	// new section header.
	assert.Contains(t, sections["DESCRIPTION"], "Description of the formula")
	assert.Contains(t, sections["DESCRIPTION"], "It works.")
}

func TestApplySections_MissingSectionLeftEmpty(t *testing.T) {
	sections := ParseSections("META TITLE: Acme Shampoo")

	var c model.SEOContent
	ApplySections(&c, sections)
	assert.Equal(t, "Acme Shampoo", c.MetaTitle)
	assert.Empty(t, c.Ingredients)
	assert.Empty(t, c.HowToUse)
}
