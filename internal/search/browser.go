package search

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/rotisserie/eris"

	"github.com/brandlift/seo-cli/internal/config"
)

// BrowserRenderer renders search-result pages in headless Chrome. The
// engine's result page is JavaScript-driven, so a static fetch returns an
// empty shell; a real render is required. One renderer owns one browser
// process; each render gets its own stealth page.
type BrowserRenderer struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
	engine  string
	timeout time.Duration
}

// NewBrowserRenderer launches headless Chrome and connects to it. The
// caller owns the renderer and must Close it when the run completes.
func NewBrowserRenderer(cfg config.SearchConfig) (*BrowserRenderer, error) {
	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, eris.Wrap(err, "search: launch chrome")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, eris.Wrap(err, "search: connect to chrome")
	}

	return &BrowserRenderer{
		browser: browser,
		lnch:    l,
		engine:  cfg.Engine,
		timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
	}, nil
}

// RenderSearch navigates a fresh page to the engine's results for query and
// returns the rendered HTML.
func (b *BrowserRenderer) RenderSearch(ctx context.Context, query string) (string, error) {
	page, err := stealth.Page(b.browser)
	if err != nil {
		return "", eris.Wrap(err, "search: open page")
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx).Timeout(b.timeout)

	searchURL := fmt.Sprintf("https://www.%s/search?q=%s", b.engine, url.QueryEscape(query))
	if err := page.Navigate(searchURL); err != nil {
		return "", eris.Wrapf(err, "search: navigate %s", searchURL)
	}
	if err := page.WaitLoad(); err != nil {
		return "", eris.Wrap(err, "search: wait for load")
	}

	rendered, err := page.HTML()
	if err != nil {
		return "", eris.Wrap(err, "search: read page html")
	}
	return rendered, nil
}

// Close shuts down the browser process.
func (b *BrowserRenderer) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.lnch != nil {
		b.lnch.Cleanup()
	}
}
