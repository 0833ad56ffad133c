package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// PageCache holds rendered public pages keyed by slug for a bounded
// staleness window. Admin writes invalidate eagerly, so the TTL is the
// worst case a reader can observe a previous version.
type PageCache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]entry

	group singleflight.Group
}

type entry struct {
	html    []byte
	expires time.Time
}

func New(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// GetOrRender returns the cached HTML for slug, rendering at most once per
// slug across concurrent readers. Render errors are not cached.
func (c *PageCache) GetOrRender(slug string, render func() ([]byte, error)) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[slug]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.expires) {
		return e.html, nil
	}

	v, err, _ := c.group.Do(slug, func() (any, error) {
		html, err := render()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[slug] = entry{html: html, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return html, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate drops the cached render for slug. Called after any publish
// state or content change touching it.
func (c *PageCache) Invalidate(slug string) {
	c.mu.Lock()
	delete(c.entries, slug)
	c.mu.Unlock()
}
