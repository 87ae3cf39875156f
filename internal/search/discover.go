// Package search discovers candidate product page URLs by rendering a web
// search and harvesting result links.
package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/brandlift/seo-cli/internal/config"
)

// Renderer produces the rendered HTML of a search-results page. The engine
// may be JavaScript-driven, so a full browser render is the default
// implementation; tests substitute static HTML.
type Renderer interface {
	RenderSearch(ctx context.Context, query string) (string, error)
}

// Discoverer turns a query string into a deduplicated, filtered list of
// candidate result URLs.
type Discoverer struct {
	renderer Renderer
	cfg      config.SearchConfig
}

// NewDiscoverer creates a Discoverer using the given renderer.
func NewDiscoverer(r Renderer, cfg config.SearchConfig) *Discoverer {
	return &Discoverer{renderer: r, cfg: cfg}
}

// Discover renders the search-results page for query and returns up to
// MaxLinks unique absolute URLs in first-seen order, excluding the search
// engine's own domain and the configured denylist. Discovery failure must
// not crash the pipeline: render errors yield an empty slice.
func (d *Discoverer) Discover(ctx context.Context, query string) []string {
	rendered, err := d.renderer.RenderSearch(ctx, query)
	if err != nil {
		zap.L().Warn("search: render failed, treating as zero links",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		zap.L().Warn("search: parse failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		candidate := d.unwrap(href)
		if !d.accept(candidate) {
			return true
		}
		if _, ok := seen[candidate]; ok {
			return true
		}
		seen[candidate] = struct{}{}
		links = append(links, candidate)
		return len(links) < d.cfg.MaxLinks
	})

	zap.L().Debug("search: discovered links",
		zap.String("query", query),
		zap.Int("count", len(links)),
	)
	return links
}

// unwrap resolves the engine's redirect-wrapper format ("/url?q=<target>")
// to the target URL. Non-wrapped hrefs pass through unchanged.
func (d *Discoverer) unwrap(href string) string {
	if !strings.HasPrefix(href, "/url?") {
		return href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	q := parsed.Query()
	if target := q.Get("q"); target != "" {
		return target
	}
	if target := q.Get("url"); target != "" {
		return target
	}
	return href
}

// accept applies the scheme, engine-domain, and denylist filters.
func (d *Discoverer) accept(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" || domainMatch(host, d.cfg.Engine) {
		return false
	}
	for _, denied := range d.cfg.DeniedDomains {
		if domainMatch(host, denied) {
			return false
		}
	}
	return true
}

// domainMatch reports whether host is domain or a subdomain of it.
func domainMatch(host, domain string) bool {
	domain = strings.ToLower(domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}
