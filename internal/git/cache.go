package git

import (
	"sync"
	"time"
)

// CachedService wraps a Service implementation with a TTL-based cache for
// read operations. The status bar and the file list both ask for status
// within the same refresh cycle; with the cache that costs one git call.
//
// Diffs are cached per (staged, path) so a burst of refreshes for the same
// selection spawns a single `git diff`. Invalidate drops everything and is
// called when the watcher reports that .git changed.
type CachedService struct {
	inner Service
	ttl   time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// maxCacheEntries caps the number of entries in the cache. When exceeded,
// expired entries are evicted and, if that is not enough, the cache is flushed.
const maxCacheEntries = 64

type cacheEntry struct {
	val    interface{}
	err    error
	expiry time.Time
}

// Compile-time check.
var _ Service = (*CachedService)(nil)

// NewCachedService wraps an existing Service with a TTL cache. A TTL
// shorter than the refresh interval keeps polling fresh while still
// deduplicating calls made within one refresh.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		cache: make(map[string]cacheEntry, 16),
	}
}

// Invalidate clears all cached entries.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 16)
	c.mu.Unlock()
}

func (c *CachedService) get(key string) (val interface{}, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[key]
	if !found || time.Now().After(e.expiry) {
		return nil, false, nil
	}
	return e.val, true, e.err
}

func (c *CachedService) set(key string, val interface{}, err error) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	if len(c.cache) >= maxCacheEntries {
		now := time.Now()
		for k, e := range c.cache {
			if now.After(e.expiry) {
				delete(c.cache, k)
			}
		}
		if len(c.cache) >= maxCacheEntries {
			c.cache = make(map[string]cacheEntry, 16)
		}
	}
	c.cache[key] = cacheEntry{val: val, err: err, expiry: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot delegates to the inner service.
func (c *CachedService) RepoRoot() string { return c.inner.RepoRoot() }

// GitDir delegates to the inner service.
func (c *CachedService) GitDir() string { return c.inner.GitDir() }

// Head returns the current HEAD ref (cached).
func (c *CachedService) Head() (string, error) {
	if v, ok, err := c.get("head"); ok {
		return v.(string), err
	}
	v, err := c.inner.Head()
	c.set("head", v, err)
	return v, err
}

// IsClean reports whether the worktree is clean (cached).
func (c *CachedService) IsClean() (bool, error) {
	if v, ok, err := c.get("isclean"); ok {
		return v.(bool), err
	}
	v, err := c.inner.IsClean()
	c.set("isclean", v, err)
	return v, err
}

// IsMerging delegates to the inner service (cached).
func (c *CachedService) IsMerging() bool {
	if v, ok, _ := c.get("ismerging"); ok {
		return v.(bool)
	}
	v := c.inner.IsMerging()
	c.set("ismerging", v, nil)
	return v
}

// IsRebasing delegates to the inner service (cached).
func (c *CachedService) IsRebasing() bool {
	if v, ok, _ := c.get("isrebasing"); ok {
		return v.(bool)
	}
	v := c.inner.IsRebasing()
	c.set("isrebasing", v, nil)
	return v
}

// AheadBehind delegates to the inner service (cached).
func (c *CachedService) AheadBehind() (int, int, error) {
	type ab struct{ a, b int }
	if v, ok, err := c.get("aheadbehind"); ok {
		r := v.(ab)
		return r.a, r.b, err
	}
	a, b, err := c.inner.AheadBehind()
	c.set("aheadbehind", ab{a, b}, err)
	return a, b, err
}

// ── Status & diff ───────────────────────────────────────────────────────────

// Status delegates to the inner service (cached).
func (c *CachedService) Status() (*StatusResult, error) {
	if v, ok, err := c.get("status"); ok {
		return v.(*StatusResult), err
	}
	v, err := c.inner.Status()
	c.set("status", v, err)
	return v, err
}

// Diff delegates to the inner service (cached per staged flag and path).
func (c *CachedService) Diff(staged bool, path string) (string, error) {
	key := "diff:u:" + path
	if staged {
		key = "diff:s:" + path
	}
	if v, ok, err := c.get(key); ok {
		return v.(string), err
	}
	v, err := c.inner.Diff(staged, path)
	c.set(key, v, err)
	return v, err
}
