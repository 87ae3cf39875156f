// Package htmltext converts raw HTML into clean plain text suitable for
// heuristic extraction. Malformed markup degrades to best-effort text,
// never an error.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Normalize strips script/style/noscript/template content and comments,
// joins visible text nodes with single spaces, collapses whitespace, and
// trims the result. Already-normalized text passes through unchanged.
func Normalize(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse is tolerant of malformed input; a hard failure means
		// the input is unusable, so degrade to empty.
		return ""
	}

	var sb strings.Builder
	collectText(doc, &sb)
	return sb.String()
}

// Title extracts the <title> text from raw HTML, or "" when absent.
func Title(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	return findTitle(doc)
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		if n.FirstChild != nil {
			return strings.Join(strings.Fields(n.FirstChild.Data), " ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// collectText walks the DOM, skipping non-visible subtrees.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		for _, field := range strings.Fields(n.Data) {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(field)
		}
		return
	}
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		}
	}
	if n.Type == html.CommentNode {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
