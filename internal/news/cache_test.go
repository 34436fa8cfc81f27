package news

import (
	"testing"
	"time"
)

func TestCacheHitWithinWindow(t *testing.T) {
	c := NewCache(10 * time.Minute)
	c.Put("technology-10", []Article{{Title: "A"}})

	got, ok := c.Get("technology-10")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Title != "A" {
		t.Errorf("unexpected cached articles: %v", got)
	}
}

func TestCacheMissAfterWindow(t *testing.T) {
	c := NewCache(10 * time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put("headlines-30", []Article{{Title: "A"}})

	c.now = func() time.Time { return base.Add(10*time.Minute + time.Second) }
	if _, ok := c.Get("headlines-30"); ok {
		t.Error("expected miss after freshness window elapsed")
	}

	// Stale entries are ignored, not evicted; a fresh Put replaces them.
	c.Put("headlines-30", []Article{{Title: "B"}})
	got, ok := c.Get("headlines-30")
	if !ok || got[0].Title != "B" {
		t.Errorf("expected fresh entry B, got %v (hit=%v)", got, ok)
	}
}

func TestCacheUnknownKey(t *testing.T) {
	c := NewCache(time.Minute)
	if _, ok := c.Get("nope"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestCachePutOverwrites(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put("k", []Article{{Title: "old"}})
	c.Put("k", []Article{{Title: "new"}})

	got, ok := c.Get("k")
	if !ok || len(got) != 1 || got[0].Title != "new" {
		t.Errorf("expected overwritten entry, got %v", got)
	}
}

func TestCacheInvalidateAll(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put("a", []Article{{Title: "A"}})
	c.Put("b", []Article{{Title: "B"}})

	c.InvalidateAll()

	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be gone after InvalidateAll")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be gone after InvalidateAll")
	}
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{CategoryKey("technology", 10), "technology-10"},
		{QueryKey("quantum computing", 50), "search-quantum computing-50"},
		{HeadlinesKey(30), "headlines-30"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}
