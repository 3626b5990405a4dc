package probe

import (
	"sync"

	"github.com/avdeyev/vidpull/internal/media"
)

// Cache holds the most recent probe result. Probing a new URL replaces the
// previous entry; a MediaInfo is immutable once stored.
type Cache struct {
	mu   sync.Mutex
	info *media.MediaInfo
}

func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached result for the URL, if it is the one last stored.
func (c *Cache) Get(url string) (*media.MediaInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.info == nil || c.info.SourceURL != url {
		return nil, false
	}
	return c.info, true
}

// Put stores a probe result, discarding whatever was cached before.
func (c *Cache) Put(info *media.MediaInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = info
}

// Clear drops the cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = nil
}
