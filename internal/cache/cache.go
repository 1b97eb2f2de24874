// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package cache holds computed aggregate responses for a short TTL, keyed
// by endpoint and selection. Charts and JSON endpoints hit the same
// aggregates repeatedly while a user adjusts the sidebar.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultCleanupInterval is how often Serve sweeps expired entries.
const DefaultCleanupInterval = time.Minute

// Entry is a cached value with its expiry.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	TotalKeys   int64     `json:"total_keys"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// Cache is a thread-safe map with per-entry expiry.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]Entry
	ttl      time.Duration
	interval time.Duration

	statsMu sync.Mutex
	stats   Stats

	now func() time.Time
}

// New creates a cache whose entries live for ttl. Expired entries are
// dropped lazily on Get and in bulk while Serve runs.
//
//	c := cache.New(5 * time.Minute)
//	c.Set(cache.GenerateKey("types", sel), counts)
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries:  make(map[string]Entry),
		ttl:      ttl,
		interval: DefaultCleanupInterval,
		stats:    Stats{LastCleanup: time.Now()},
		now:      time.Now,
	}
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.record(func(s *Stats) { s.Misses++ })
		metrics.RecordCacheLookup(false)
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Another goroutine may have refreshed the entry meanwhile.
		if current, still := c.entries[key]; still && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.record(func(s *Stats) { s.Misses++; s.Evictions++ })
		metrics.RecordCacheLookup(false)
		return nil, false
	}

	c.record(func(s *Stats) { s.Hits++ })
	metrics.RecordCacheLookup(true)
	return entry.Data, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{Data: value, ExpiresAt: c.now().Add(ttl)}
	n := int64(len(c.entries))
	c.mu.Unlock()

	c.record(func(s *Stats) { s.TotalKeys = n })
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	n := int64(len(c.entries))
	c.mu.Unlock()

	if ok {
		c.record(func(s *Stats) { s.Evictions++; s.TotalKeys = n })
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.record(func(s *Stats) { s.Evictions += evicted; s.TotalKeys = 0 })
}

// GetStats returns a copy of the current statistics.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns hits as a percentage of lookups, or 0 before any lookup.
func (c *Cache) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Serve sweeps expired entries until ctx is done. It satisfies
// suture.Service so the janitor runs under the supervisor tree.
func (c *Cache) Serve(ctx context.Context) error {
	log := logging.WithComponent("cache")
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := c.cleanup(); n > 0 {
				log.Debug().Int("evicted", n).Msg("Expired cache entries removed")
			}
		}
	}
}

// String names the service in supervisor logs.
func (c *Cache) String() string { return "aggregate-cache" }

// cleanup removes expired entries and returns how many it removed.
func (c *Cache) cleanup() int {
	now := c.now()
	c.mu.Lock()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	n := int64(len(c.entries))
	c.mu.Unlock()

	c.record(func(s *Stats) {
		s.Evictions += int64(evicted)
		s.TotalKeys = n
		s.LastCleanup = now
	})
	return evicted
}

func (c *Cache) record(update func(*Stats)) {
	c.statsMu.Lock()
	update(&c.stats)
	c.statsMu.Unlock()
}

// GenerateKey derives a compact key from a name and JSON-serializable
// params. Equal params always produce the same key.
func GenerateKey(name string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", name, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", name, hash[:16])
}
