package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Fatal("missing key should not be found")
	}

	c.Set("a", 1)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("expected 1, got %d (ok=%t)", got, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	// Uzun cleanup aralığı — expiry'nin Get anında da uygulandığını doğrular
	c := New[string, int](20*time.Millisecond, time.Hour)
	defer c.Close()

	c.Set("a", 1)
	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry should not be served")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("expected empty cache after clear, got %d entries", c.Len())
	}
}

func TestCacheDeleteFunc(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("country:turkey", 1)
	c.Set("country:france", 2)
	c.Set("tag:jazz", 3)

	c.DeleteFunc(func(key string) bool {
		return len(key) > 4 && key[:4] == "tag:"
	})

	if _, ok := c.Get("tag:jazz"); ok {
		t.Fatal("predicate match should be deleted")
	}
	if _, ok := c.Get("country:turkey"); !ok {
		t.Fatal("non-matching entries should survive")
	}
}
