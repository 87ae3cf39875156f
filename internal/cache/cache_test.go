package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlift/seo-cli/internal/model"
)

func openTestCache(t *testing.T, ttl time.Duration) *PageCache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPageCache_RoundTrip(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()

	page := model.ScrapedPage{
		URL:    "https://shop.example.com/p/1",
		Title:  "Shampoo",
		Text:   "Buy our product, price $19.99",
		Status: model.PageOK,
	}
	require.NoError(t, c.Put(ctx, page))

	got, ok := c.Get(ctx, page.URL)
	require.True(t, ok)
	assert.Equal(t, page.Title, got.Title)
	assert.Equal(t, page.Text, got.Text)
	assert.Equal(t, model.PageOK, got.Status)
}

func TestPageCache_MissAndExpiry(t *testing.T) {
	c := openTestCache(t, -time.Second) // already expired on insert
	ctx := context.Background()

	_, ok := c.Get(ctx, "https://never-stored.example.com")
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, model.ScrapedPage{
		URL:    "https://shop.example.com/p/2",
		Text:   "text",
		Status: model.PageOK,
	}))
	_, ok = c.Get(ctx, "https://shop.example.com/p/2")
	assert.False(t, ok)

	n, err := c.Prune(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPageCache_SkipsFailedPages(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, model.ScrapedPage{
		URL:    "https://bad.example.com",
		Status: model.PageFetchError,
		Error:  "timeout",
	}))
	_, ok := c.Get(ctx, "https://bad.example.com")
	assert.False(t, ok)
}

func TestPageCache_Upsert(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()

	url := "https://shop.example.com/p/3"
	require.NoError(t, c.Put(ctx, model.ScrapedPage{URL: url, Text: "old", Status: model.PageOK}))
	require.NoError(t, c.Put(ctx, model.ScrapedPage{URL: url, Text: "new", Status: model.PageOK}))

	got, ok := c.Get(ctx, url)
	require.True(t, ok)
	assert.Equal(t, "new", got.Text)
}
