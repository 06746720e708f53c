package registry

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// CacheConfig sizes the participant cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CacheStats reports participant cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

type cachedParticipant struct {
	Version     string
	Participant domain.Participant
}

// participantCache is an expirable LRU of resolved participants.
// Entries are copies; callers never share a pointer with the cache.
//
// Fills are guarded by a generation counter: a reader takes Generation before
// going to storage and Fill drops the row if any Invalidate ran since, so a
// slow read can never put back a team that a committed reassignment replaced.
type participantCache struct {
	lru *expirable.LRU[string, *cachedParticipant]

	mu         sync.Mutex
	generation uint64

	hits   atomic.Int64
	misses atomic.Int64
}

func newParticipantCache(cfg CacheConfig) *participantCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &participantCache{
		lru: expirable.NewLRU[string, *cachedParticipant](cfg.Size, nil, cfg.TTL),
	}
}

func (c *participantCache) Get(participantID string) (*domain.Participant, bool) {
	entry, ok := c.lru.Get(participantID)
	if !ok || entry.Version != CacheSchemaVersion {
		if ok {
			c.lru.Remove(participantID)
		}
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	p := entry.Participant
	return &p, true
}

// Generation returns the token a later Fill is checked against
func (c *participantCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Fill caches p unless an invalidation happened after gen was taken
func (c *participantCache) Fill(p *domain.Participant, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.lru.Add(p.ID, &cachedParticipant{Version: CacheSchemaVersion, Participant: *p})
	return true
}

func (c *participantCache) Invalidate(participantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.lru.Remove(participantID)
}

func (c *participantCache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
