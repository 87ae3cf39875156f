package scrape

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of anti-bot wall a response hit. Blocked
// pages carry no usable product text, so the fetcher reports them as
// failures rather than feeding boilerplate to the extractor.
type BlockType string

const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockJSShell    BlockType = "js_shell"
)

// bodyMarkers maps lowercase body substrings to the block they indicate.
var bodyMarkers = []struct {
	marker string
	block  BlockType
}{
	{"checking your browser", BlockCloudflare},
	{"cf-browser-verification", BlockCloudflare},
	{"attention required! | cloudflare", BlockCloudflare},
	{"recaptcha", BlockCaptcha},
	{"hcaptcha", BlockCaptcha},
	{"captcha", BlockCaptcha},
	{"access denied", BlockCaptcha},
}

// jsShellBodyMax is the size under which a page is suspiciously small for
// a product listing and may be a script-only shell.
const jsShellBodyMax = 2000

// DetectBlock inspects a response for anti-bot protection and returns the
// block kind, or BlockNone for an ordinary page.
func DetectBlock(resp *http.Response, body []byte) BlockType {
	if resp == nil {
		return BlockNone
	}

	if fromCloudflare(resp) && (resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusServiceUnavailable ||
		resp.StatusCode == http.StatusTooManyRequests) {
		return BlockCloudflare
	}

	lower := strings.ToLower(string(body))
	for _, bm := range bodyMarkers {
		if strings.Contains(lower, bm.marker) {
			return bm.block
		}
	}

	if len(body) < jsShellBodyMax {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return BlockJSShell
		}
		if strings.Contains(lower, `meta http-equiv="refresh"`) {
			return BlockJSShell
		}
	}

	return BlockNone
}

func fromCloudflare(resp *http.Response) bool {
	return resp.Header.Get("Cf-Ray") != "" ||
		resp.Header.Get("Cf-Cache-Status") != "" ||
		strings.EqualFold(resp.Header.Get("Server"), "cloudflare")
}
