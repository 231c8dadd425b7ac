// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/preprintlabs/paperscope/internal/metrics"
)

func newTestStore(t *testing.T, ttl time.Duration, capacity int) *Store {
	t.Helper()
	s := New("test", ttl, capacity)
	t.Cleanup(s.Stop)
	return s
}

func TestStoreSetGet(t *testing.T) {
	s := newTestStore(t, time.Minute, 16)

	s.Set("k1", "value1")
	got, ok := s.Get("k1")
	if !ok {
		t.Fatal("expected hit for k1")
	}
	if got.(string) != "value1" {
		t.Errorf("got %v, want value1", got)
	}

	if _, ok := s.Get("absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := newTestStore(t, time.Minute, 16)

	s.Set("k", 1)
	s.Set("k", 2)
	got, ok := s.Get("k")
	if !ok || got.(int) != 2 {
		t.Errorf("got %v/%v, want 2/true", got, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	s := newTestStore(t, time.Minute, 16)

	s.SetWithTTL("short", "data", 20*time.Millisecond)

	if got, ok := s.Get("short"); !ok || got.(string) != "data" {
		t.Fatalf("before expiry: got %v/%v, want data/true", got, ok)
	}

	time.Sleep(40 * time.Millisecond)

	if _, ok := s.Get("short"); ok {
		t.Error("expected miss after TTL elapsed")
	}
	if s.Len() != 0 {
		t.Errorf("expired entry not removed, Len() = %d", s.Len())
	}
}

func TestStoreLRUEviction(t *testing.T) {
	s := newTestStore(t, time.Minute, 2)

	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3) // evicts a

	if _, ok := s.Get("a"); ok {
		t.Error("expected a to be evicted at capacity")
	}
	if _, ok := s.Get("b"); !ok {
		t.Error("expected b to survive")
	}
	if _, ok := s.Get("c"); !ok {
		t.Error("expected c to survive")
	}
}

func TestStoreLRUPromotionOnGet(t *testing.T) {
	s := newTestStore(t, time.Minute, 2)

	s.Set("a", 1)
	s.Set("b", 2)

	// Touch a so b becomes least recently used.
	if _, ok := s.Get("a"); !ok {
		t.Fatal("expected hit for a")
	}

	s.Set("c", 3) // evicts b

	if _, ok := s.Get("b"); ok {
		t.Error("expected b to be evicted after a was promoted")
	}
	if _, ok := s.Get("a"); !ok {
		t.Error("expected promoted a to survive")
	}
}

func TestStoreClear(t *testing.T) {
	s := newTestStore(t, time.Minute, 16)

	for i := 0; i < 5; i++ {
		s.Set(fmt.Sprintf("k%d", i), i)
	}
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
	if _, ok := s.Get("k0"); ok {
		t.Error("expected miss after Clear")
	}
}

func TestStoreClearRecordsEvictions(t *testing.T) {
	// Dedicated pool name so other tests never touch this metric series.
	s := New("clear-metrics", time.Minute, 16)
	t.Cleanup(s.Stop)

	for i := 0; i < 3; i++ {
		s.Set(fmt.Sprintf("k%d", i), i)
	}

	before := testutil.ToFloat64(metrics.CacheEvictions.WithLabelValues("clear-metrics"))
	s.Clear()
	after := testutil.ToFloat64(metrics.CacheEvictions.WithLabelValues("clear-metrics"))

	if delta := after - before; delta != 3 {
		t.Errorf("eviction metric delta = %v after Clear, want 3", delta)
	}
	if st := s.GetStats(); st.Evictions != 3 {
		t.Errorf("Evictions = %d, want 3", st.Evictions)
	}
}

func TestStoreStats(t *testing.T) {
	s := newTestStore(t, time.Minute, 16)

	s.Set("k", "v")
	s.Get("k")      // hit
	s.Get("absent") // miss
	s.Get("absent") // miss

	st := s.GetStats()
	if st.Hits != 1 {
		t.Errorf("Hits = %d, want 1", st.Hits)
	}
	if st.Misses != 2 {
		t.Errorf("Misses = %d, want 2", st.Misses)
	}
	if st.Keys != 1 {
		t.Errorf("Keys = %d, want 1", st.Keys)
	}

	rate := s.HitRate()
	want := 100.0 / 3.0
	if rate < want-0.01 || rate > want+0.01 {
		t.Errorf("HitRate() = %f, want about %f", rate, want)
	}
}

func TestHitRateNoTraffic(t *testing.T) {
	s := newTestStore(t, time.Minute, 16)
	if rate := s.HitRate(); rate != 0.0 {
		t.Errorf("HitRate() = %f on empty store, want 0", rate)
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	type filter struct {
		Subject string `json:"subject"`
		Year    int    `json:"year"`
	}

	k1 := GenerateKey("Papers", filter{Subject: "bio", Year: 2021})
	k2 := GenerateKey("Papers", filter{Subject: "bio", Year: 2021})
	if k1 != k2 {
		t.Errorf("identical params produced different keys: %s vs %s", k1, k2)
	}
}

func TestGenerateKeyCanonicalMapOrder(t *testing.T) {
	// Maps populated in different insertion orders must serialize
	// identically (sorted keys) and collide to the same cache key.
	m1 := map[string]string{}
	m1["subject"] = "bio"
	m1["server"] = "biorxiv"
	m1["country"] = "Japan"

	m2 := map[string]string{}
	m2["country"] = "Japan"
	m2["server"] = "biorxiv"
	m2["subject"] = "bio"

	k1 := GenerateKey("Papers", m1)
	k2 := GenerateKey("Papers", m2)
	if k1 != k2 {
		t.Errorf("logically equal maps produced different keys: %s vs %s", k1, k2)
	}
}

func TestGenerateKeyDistinguishes(t *testing.T) {
	tests := []struct {
		name           string
		methodA        string
		paramsA        interface{}
		methodB        string
		paramsB        interface{}
	}{
		{"different methods", "Papers", "x", "Search", "x"},
		{"different params", "Papers", map[string]int{"page": 1}, "Papers", map[string]int{"page": 2}},
		{"nil vs empty", "Papers", nil, "Papers", map[string]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kA := GenerateKey(tt.methodA, tt.paramsA)
			kB := GenerateKey(tt.methodB, tt.paramsB)
			if kA == kB {
				t.Errorf("expected distinct keys, both were %s", kA)
			}
		})
	}
}

func TestGenerateKeyHasMethodPrefix(t *testing.T) {
	key := GenerateKey("Dashboard", nil)
	if len(key) < len("Dashboard:") || key[:len("Dashboard:")] != "Dashboard:" {
		t.Errorf("key %q does not carry the method prefix", key)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := newTestStore(t, time.Minute, 128)

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%32)
				s.Set(key, i)
				s.Get(key)
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}

	if s.Len() > 32 {
		t.Errorf("Len() = %d, want at most 32 distinct keys", s.Len())
	}
}
