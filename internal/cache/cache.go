// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

// Package cache provides the in-memory response cache: a TTL store with
// least-recently-used eviction under capacity pressure, plus deterministic
// cache key generation from request parameters.
//
// Two pools are constructed at startup and injected into the API handler: a
// general pool (short TTL, larger capacity) for listing/search/detail
// responses whose key cardinality is high, and an analytics pool (longer TTL,
// smaller capacity) for aggregate documents that are expensive to compute and
// change slowly. Values are treated as immutable once stored.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/preprintlabs/paperscope/internal/metrics"
)

// Store is a thread-safe TTL + LRU cache pool.
//
// Expired entries are treated as misses even while physically present; they
// are removed lazily on read and by a background cleanup loop. Insertion past
// capacity evicts the least-recently-used entry.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	ttl      time.Duration
	capacity int
	name     string

	hits        int64
	misses      int64
	evictions   int64
	lastCleanup time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	key       string
	value     interface{}
	expiresAt time.Time
}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Keys        int64
	LastCleanup time.Time
}

// cleanupInterval is how often the background sweep removes expired entries.
const cleanupInterval = time.Minute

// New creates a cache pool with the given TTL and maximum entry count and
// starts its background cleanup goroutine. The name labels the pool in
// Prometheus metrics ("general", "analytics").
func New(name string, ttl time.Duration, capacity int) *Store {
	if capacity <= 0 {
		capacity = 1024
	}
	s := &Store{
		entries:     make(map[string]*list.Element),
		order:       list.New(),
		ttl:         ttl,
		capacity:    capacity,
		name:        name,
		lastCleanup: time.Now(),
		stop:        make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Get retrieves a value by key. An entry older than the pool TTL is removed
// and reported as a miss. A hit promotes the entry to most-recently-used.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		s.misses++
		metrics.CacheMisses.WithLabelValues(s.name).Inc()
		return nil, false
	}

	ent := elem.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		s.removeLocked(elem)
		s.misses++
		s.evictions++
		metrics.CacheMisses.WithLabelValues(s.name).Inc()
		metrics.CacheEvictions.WithLabelValues(s.name).Inc()
		return nil, false
	}

	s.order.MoveToFront(elem)
	s.hits++
	metrics.CacheHits.WithLabelValues(s.name).Inc()
	return ent.value, true
}

// Set stores a value under key with the pool's default TTL.
func (s *Store) Set(key string, value interface{}) {
	s.SetWithTTL(key, value, s.ttl)
}

// SetWithTTL stores a value with an explicit TTL, evicting the
// least-recently-used entry while the pool is over capacity.
func (s *Store) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := time.Now().Add(ttl)
	if elem, ok := s.entries[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = value
		ent.expiresAt = expiresAt
		s.order.MoveToFront(elem)
		return
	}

	elem := s.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	s.entries[key] = elem

	for len(s.entries) > s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		s.removeLocked(oldest)
		s.evictions++
		metrics.CacheEvictions.WithLabelValues(s.name).Inc()
	}
	metrics.CacheSize.WithLabelValues(s.name).Set(float64(len(s.entries)))
}

// Delete removes a single entry. Safe to call for absent keys.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if elem, ok := s.entries[key]; ok {
		s.removeLocked(elem)
		s.evictions++
		metrics.CacheEvictions.WithLabelValues(s.name).Inc()
	}
}

// Clear drops every entry in the pool.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	flushed := len(s.entries)
	s.evictions += int64(flushed)
	metrics.CacheEvictions.WithLabelValues(s.name).Add(float64(flushed))
	s.entries = make(map[string]*list.Element)
	s.order.Init()
	metrics.CacheSize.WithLabelValues(s.name).Set(0)
}

// Len returns the current entry count, expired entries included until swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// GetStats returns a snapshot of the pool counters.
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Hits:        s.hits,
		Misses:      s.misses,
		Evictions:   s.evictions,
		Keys:        int64(len(s.entries)),
		LastCleanup: s.lastCleanup,
	}
}

// HitRate returns the hit percentage, 0 when the pool has seen no traffic.
func (s *Store) HitRate() float64 {
	st := s.GetStats()
	total := st.Hits + st.Misses
	if total == 0 {
		return 0.0
	}
	return float64(st.Hits) / float64(total) * 100.0
}

// Stop terminates the background cleanup goroutine. Intended for tests and
// orderly shutdown; the store remains usable afterwards.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// removeLocked unlinks an element; caller holds s.mu.
func (s *Store) removeLocked(elem *list.Element) {
	ent := elem.Value.(*entry)
	s.order.Remove(elem)
	delete(s.entries, ent.key)
}

func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup sweeps expired entries from the back of the LRU order forward.
func (s *Store) cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []*list.Element
	for elem := s.order.Back(); elem != nil; elem = elem.Prev() {
		if now.After(elem.Value.(*entry).expiresAt) {
			expired = append(expired, elem)
		}
	}
	for _, elem := range expired {
		s.removeLocked(elem)
		s.evictions++
		metrics.CacheEvictions.WithLabelValues(s.name).Inc()
	}
	s.lastCleanup = now
	metrics.CacheSize.WithLabelValues(s.name).Set(float64(len(s.entries)))
}
