// Package cache persists fetched pages in a local sqlite database so that
// repeated runs against the same product do not re-scrape every URL. A
// cache failure is never fatal: callers degrade to a live fetch.
package cache

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/brandlift/seo-cli/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	url        TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	text       TEXT NOT NULL,
	fetched_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_expires ON pages (expires_at);
`

// PageCache is a TTL cache of successfully scraped pages.
type PageCache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens (creating if needed) the cache database at path.
func Open(path string, ttl time.Duration) (*PageCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "cache: open database")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "cache: apply pragmas")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "cache: create schema")
	}
	return &PageCache{db: db, ttl: ttl}, nil
}

// Get returns the cached page for url if present and not expired.
func (c *PageCache) Get(ctx context.Context, url string) (*model.ScrapedPage, bool) {
	row := c.db.QueryRowContext(ctx,
		`SELECT title, text FROM pages WHERE url = ? AND expires_at > ?`,
		url, time.Now().Unix(),
	)
	var title, text string
	if err := row.Scan(&title, &text); err != nil {
		return nil, false
	}
	return &model.ScrapedPage{
		URL:    url,
		Title:  title,
		Text:   text,
		Status: model.PageOK,
	}, true
}

// Put stores a successfully scraped page. Failed or rejected pages are not
// cached so they get retried on the next run.
func (c *PageCache) Put(ctx context.Context, page model.ScrapedPage) error {
	if page.Status != model.PageOK {
		return nil
	}
	now := time.Now()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO pages (url, title, text, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
		   title = excluded.title,
		   text = excluded.text,
		   fetched_at = excluded.fetched_at,
		   expires_at = excluded.expires_at`,
		page.URL, page.Title, page.Text, now.Unix(), now.Add(c.ttl).Unix(),
	)
	if err != nil {
		return eris.Wrap(err, "cache: store page")
	}
	return nil
}

// Prune deletes expired entries and returns the number removed.
func (c *PageCache) Prune(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM pages WHERE expires_at <= ?`, time.Now().Unix(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "cache: prune")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close releases the underlying database handle.
func (c *PageCache) Close() error {
	return c.db.Close()
}
