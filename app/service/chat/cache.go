package chat

import (
	"sync"
	"time"
)

// replyTTL is short on purpose: it only absorbs double-sends and retry
// storms of the exact same message, not repeated questions minutes
// apart, which should see fresh data.
const replyTTL = 20 * time.Second

type cacheEntry struct {
	reply string
	meta  Meta
	at    time.Time
}

type replyCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func newReplyCache() *replyCache {
	return &replyCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *replyCache) get(message string) (string, Meta, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[message]
	if !ok {
		return "", Meta{}, false
	}
	if c.now().Sub(entry.at) > replyTTL {
		delete(c.entries, message)
		return "", Meta{}, false
	}
	return entry.reply, entry.meta, true
}

func (c *replyCache) put(message, reply string, meta Meta) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Expired entries pile up only for distinct messages inside a TTL
	// window; sweep opportunistically on write.
	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.at) > replyTTL {
			delete(c.entries, key)
		}
	}

	c.entries[message] = cacheEntry{reply: reply, meta: meta, at: now}
}
