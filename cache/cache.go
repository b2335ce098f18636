// Package cache holds short-lived rendered pages.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// IndexKey is the fixed key for the rendered home page. Query parameters do
// not take part in the key.
const IndexKey = "index_page"

// PageCache stores fully rendered response bytes for a fixed window. A hit
// inside the window is served verbatim even when the underlying data changed;
// writes never invalidate it.
type PageCache struct {
	ttl   time.Duration
	store *gocache.Cache
}

func New(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:   ttl,
		store: gocache.New(ttl, 2*ttl),
	}
}

func (p *PageCache) Get(key string) ([]byte, bool) {
	v, ok := p.store.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

func (p *PageCache) Set(key string, body []byte) {
	p.store.Set(key, body, p.ttl)
}

// Clear drops every cached page. Used by tests and after deploys.
func (p *PageCache) Clear() {
	p.store.Flush()
}

func (p *PageCache) TTL() time.Duration {
	return p.ttl
}
