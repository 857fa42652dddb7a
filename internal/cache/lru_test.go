// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[int](3, 0)

	c.Add("a", 1)
	c.Add("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	c.Add("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) after update = %v, want 10", v)
	}
	if size := c.Stats().Size; size != 2 {
		t.Errorf("Size = %d, want 2", size)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string](2, 0)

	c.Add("first", "1")
	c.Add("second", "2")
	c.Get("first") // first becomes most recent
	c.Add("third", "3")

	if _, ok := c.Get("second"); ok {
		t.Error("second should have been evicted")
	}
	if _, ok := c.Get("first"); !ok {
		t.Error("first should still be cached")
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRU_TTLExpiry(t *testing.T) {
	c := NewLRU[int](4, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add("k", 1)
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry should be live before TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should expire after TTL")
	}
	if size := c.Stats().Size; size != 0 {
		t.Errorf("expired entry should be removed, Size = %d", size)
	}
}

func TestLRU_GetOrLoad(t *testing.T) {
	c := NewLRU[int](4, 0)
	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	v, hit, err := c.GetOrLoad("x", load)
	if err != nil || hit || v != 42 {
		t.Fatalf("first GetOrLoad = %v, %v, %v; want 42, false, nil", v, hit, err)
	}
	v, hit, err = c.GetOrLoad("x", load)
	if err != nil || !hit || v != 42 {
		t.Fatalf("second GetOrLoad = %v, %v, %v; want 42, true, nil", v, hit, err)
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	wantErr := errors.New("boom")
	if _, _, err := c.GetOrLoad("y", func() (int, error) { return 0, wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("GetOrLoad error = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get("y"); ok {
		t.Error("failed load must not be cached")
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[int](2, 0)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss, size 1", s)
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[int](50, 0)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := string(rune('a' + (id+j)%26))
				c.Add(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if size := c.Stats().Size; size > 50 {
		t.Errorf("Size = %d exceeds capacity", size)
	}
}
