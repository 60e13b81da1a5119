package store

import (
	"sync"
	"time"

	"github.com/epochline/epochline/internal/timeline"
)

// cacheNow is the cache clock, replaceable in tests.
var cacheNow = time.Now

// docCache is a single-entry, TTL-boxed cache of the last read document. It
// exists purely to reduce read traffic on the public list path; it is primed
// by Read, never consulted by Mutate, and invalidated after every
// successful write.
type docCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	col     timeline.Collection
	ver     Version
	fetched time.Time
	valid   bool
}

func newDocCache(ttl time.Duration) *docCache {
	return &docCache{ttl: ttl}
}

// get returns a deep copy of the cached document while it is fresh.
func (d *docCache) get() (timeline.Collection, Version, bool) {
	if d.ttl <= 0 {
		return timeline.Collection{}, "", false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.valid || cacheNow().Sub(d.fetched) > d.ttl {
		return timeline.Collection{}, "", false
	}
	return d.col.Clone(), d.ver, true
}

func (d *docCache) put(col timeline.Collection, ver Version) {
	if d.ttl <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.col = col.Clone()
	d.ver = ver
	d.fetched = cacheNow()
	d.valid = true
}

func (d *docCache) invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.valid = false
	d.col = timeline.Collection{}
	d.ver = ""
}
