package cache

import (
	"sync"
	"time"

	"github.com/codeelevater/alumni-connect/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

const requestedCacheName = "requested"

// RequestedCacheInterface tracks which alumni a student has asked for mentorship
// during the current session
type RequestedCacheInterface interface {
	Mark(studentID, alumniID string)
	Has(studentID, alumniID string) bool
	Requested(studentID string) []string
}

// RequestedCache holds one set of alumni ids per student. Entries expire after
// the TTL since the last request and are never persisted.
type RequestedCache struct {
	cache *gocache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

// NewRequestedCache creates a cache whose per-student sets live for ttl
func NewRequestedCache(ttl time.Duration) *RequestedCache {
	return &RequestedCache{
		cache: gocache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Mark adds alumniID to the student's set and restarts its TTL
func (rc *RequestedCache) Mark(studentID, alumniID string) {
	if studentID == "" || alumniID == "" {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	ids := rc.load(studentID)
	for _, id := range ids {
		if id == alumniID {
			rc.cache.Set(studentID, ids, rc.ttl)
			return
		}
	}

	next := make([]string, len(ids), len(ids)+1)
	copy(next, ids)
	next = append(next, alumniID)
	rc.cache.Set(studentID, next, rc.ttl)

	metrics.CacheSize.WithLabelValues(requestedCacheName).Set(float64(rc.cache.ItemCount()))
}

// Has reports whether alumniID is in the student's set
func (rc *RequestedCache) Has(studentID, alumniID string) bool {
	for _, id := range rc.Requested(studentID) {
		if id == alumniID {
			return true
		}
	}
	return false
}

// Requested returns the student's set in request order
func (rc *RequestedCache) Requested(studentID string) []string {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	ids := rc.load(studentID)
	if ids == nil {
		metrics.CacheMisses.WithLabelValues(requestedCacheName).Inc()
		return []string{}
	}
	metrics.CacheHits.WithLabelValues(requestedCacheName).Inc()

	return append([]string{}, ids...)
}

func (rc *RequestedCache) load(studentID string) []string {
	data, found := rc.cache.Get(studentID)
	if !found {
		return nil
	}
	ids, ok := data.([]string)
	if !ok {
		rc.cache.Delete(studentID)
		return nil
	}
	return ids
}
