package pipeline

import (
	"regexp"
	"strings"

	"github.com/brandlift/seo-cli/internal/model"
)

// sectionHeaderRe matches a section label line, tolerating the formatting
// drift models produce: numbering, markdown headers or bold, a missing
// colon, or the first sentence inline after the colon. Longer labels come
// first in the alternation so "META DESCRIPTION" is not read as
// "DESCRIPTION".
var sectionHeaderRe = regexp.MustCompile(
	`(?i)^[\s#*\d.)-]*(META DESCRIPTION|META TITLE|SHORT DESCRIPTION|HOW TO USE|INGREDIENTS|DESCRIPTION)\s*(?::\s*(.*?))?[\s*]*$`)

// ParseSections splits a model reply into labeled sections. Unlabeled
// leading text is discarded; a label that never appears is simply absent
// from the map.
func ParseSections(raw string) map[string]string {
	sections := make(map[string]string)
	var current string
	var buf []string

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
		buf = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := sectionHeaderRe.FindStringSubmatch(line); m != nil {
			flush()
			current = strings.ToUpper(m[1])
			if rest := strings.Trim(m[2], "* \t"); rest != "" {
				buf = append(buf, rest)
			}
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()
	return sections
}

// ApplySections copies parsed sections onto the content record. A missing
// section leaves its field empty rather than failing the run.
func ApplySections(c *model.SEOContent, sections map[string]string) {
	c.MetaTitle = sections["META TITLE"]
	c.MetaDescription = sections["META DESCRIPTION"]
	c.ShortDescription = sections["SHORT DESCRIPTION"]
	c.Description = sections["DESCRIPTION"]
	c.HowToUse = sections["HOW TO USE"]
	c.Ingredients = sections["INGREDIENTS"]
}
