package scrape

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/brandlift/seo-cli/internal/htmltext"
)

const maxBodyBytes = 512 * 1024

// HTTPFetcher fetches pages with a plain HTTP GET and an HTML-to-text
// normalization pass. Target pages here are product listings, which render
// their prices and descriptions server-side, so a full browser render is
// not worth its cost per URL.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPFetcher creates an HTTPFetcher with the given per-request timeout
// and a global politeness rate for outbound requests.
func NewHTTPFetcher(timeout time.Duration, requestsPerSec float64) *HTTPFetcher {
	if requestsPerSec <= 0 {
		requestsPerSec = 2
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

// Fetch retrieves a URL, detects anti-bot blocks, and normalizes the body
// to plain text.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "http: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "http: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SEOResearchBot/1.0)")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "http: read body")
	}

	if bt := DetectBlock(resp, body); bt != BlockNone {
		return nil, eris.Errorf("http: blocked (%s)", bt)
	}

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("http: status %d", resp.StatusCode)
	}

	raw := string(body)
	return &Page{
		URL:   targetURL,
		Title: htmltext.Title(raw),
		Text:  htmltext.Normalize(raw),
	}, nil
}
