package game

import (
	"testing"
)

func TestHTTPCacheNilGdata(t *testing.T) {
	c := NewHTTPCache(nil)
	if err := c.Store("https://example.com/a", []byte("x")); err != nil {
		t.Errorf("Store() returned %v", err)
	}
	if _, ok, err := c.Load("https://example.com/a"); ok || err != nil {
		t.Errorf("degraded cache should never hit: ok=%v err=%v", ok, err)
	}
	if err := c.Delete("https://example.com/a"); err != nil {
		t.Errorf("Delete() returned %v", err)
	}
}

func TestHTTPCacheStoreLoadDelete(t *testing.T) {
	c := NewHTTPCache(newTestGdataManager(t, "httpcache"))
	key := "https://api.github.com/users/octocat?x=1&y=/2"

	if _, ok, _ := c.Load(key); ok {
		t.Fatal("unexpected hit before Store")
	}
	if err := c.Store(key, []byte("payload")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	data, ok, err := c.Load(key)
	if err != nil || !ok || string(data) != "payload" {
		t.Fatalf("Load() = %q, %v, %v", data, ok, err)
	}
	if _, ok, _ := c.Load(key + "#other"); ok {
		t.Error("different key should miss")
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := c.Load(key); ok {
		t.Error("entry still present after Delete")
	}
}

func TestCacheProp(t *testing.T) {
	a := cacheProp("https://example.com/a")
	if a != cacheProp("https://example.com/a") {
		t.Error("cacheProp is not deterministic")
	}
	if a == cacheProp("https://example.com/b") {
		t.Error("different keys map to the same prop")
	}
	if len(a) != 32 {
		t.Errorf("prop length = %d, want 32", len(a))
	}
}
