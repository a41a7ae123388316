package hasher

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"massnet.org/shasum/crypto/sha256"
)

// fileKey identifies a file version. A file rewritten in place with the
// same size and mtime is indistinguishable.
type fileKey struct {
	path    string
	size    int64
	modTime int64
}

func newFileKey(path string, size int64, modTime time.Time) fileKey {
	return fileKey{path: path, size: size, modTime: modTime.UnixNano()}
}

// digestCache is a concurrent safe lru cache of file digests.
type digestCache struct {
	l     sync.Mutex
	cache *lru.Cache
}

// newDigestCache returns nil when maxEntries is 0; a nil cache never hits.
func newDigestCache(maxEntries int) *digestCache {
	if maxEntries <= 0 {
		return nil
	}
	return &digestCache{
		cache: lru.New(maxEntries),
	}
}

func (c *digestCache) Get(key fileKey) (sha256.Digest, bool) {
	if c == nil {
		return sha256.Digest{}, false
	}
	c.l.Lock()
	defer c.l.Unlock()
	v, ok := c.cache.Get(key)
	if !ok {
		return sha256.Digest{}, false
	}
	return v.(sha256.Digest), true
}

func (c *digestCache) Add(key fileKey, d sha256.Digest) {
	if c == nil {
		return
	}
	c.l.Lock()
	c.cache.Add(key, d)
	c.l.Unlock()
}

func (c *digestCache) Len() int {
	if c == nil {
		return 0
	}
	c.l.Lock()
	defer c.l.Unlock()
	return c.cache.Len()
}

func (c *digestCache) Clear() {
	if c == nil {
		return
	}
	c.l.Lock()
	c.cache.Clear()
	c.l.Unlock()
}
