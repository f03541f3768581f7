package memory

import (
	"fmt"
	"testing"
)

func TestResponseCacheRoundTrip(t *testing.T) {
	c := NewResponseCache(20)

	if _, ok := c.Get("summary", "prompt"); ok {
		t.Fatal("empty cache reported a hit")
	}

	c.Put("summary", "prompt", "R")
	got, ok := c.Get("summary", "prompt")
	if !ok || got != "R" {
		t.Errorf("Get = %q, %v; want R, true", got, ok)
	}

	// Same prompt under a different feature is a distinct entry.
	if _, ok := c.Get("coverLetter", "prompt"); ok {
		t.Error("feature name is not part of the cache key")
	}
}

func TestResponseCacheFIFOEviction(t *testing.T) {
	c := NewResponseCache(20)
	for i := 0; i < 20; i++ {
		c.Put("summary", fmt.Sprintf("prompt-%d", i), fmt.Sprintf("resp-%d", i))
	}

	// Touch the oldest entry; FIFO must ignore recency.
	if _, ok := c.Get("summary", "prompt-0"); !ok {
		t.Fatal("prompt-0 missing before eviction")
	}

	c.Put("summary", "prompt-20", "resp-20")

	if _, ok := c.Get("summary", "prompt-0"); ok {
		t.Error("oldest-inserted entry survived eviction")
	}
	if _, ok := c.Get("summary", "prompt-1"); !ok {
		t.Error("second-oldest entry evicted too early")
	}
	if _, ok := c.Get("summary", "prompt-20"); !ok {
		t.Error("new entry missing after eviction")
	}
	if c.Len() != 20 {
		t.Errorf("Len = %d, want 20", c.Len())
	}
}

func TestResponseCacheOverwriteKeepsPosition(t *testing.T) {
	c := NewResponseCache(2)
	c.Put("f", "a", "1")
	c.Put("f", "b", "2")
	c.Put("f", "a", "updated")
	c.Put("f", "c", "3") // evicts "a", still the oldest insertion

	if _, ok := c.Get("f", "a"); ok {
		t.Error("overwrite must not refresh insertion order")
	}
	if v, ok := c.Get("f", "b"); !ok || v != "2" {
		t.Errorf(`Get(b) = %q, %v`, v, ok)
	}
}
