package cache

import (
	"fmt"
	"testing"

	"github.com/use-agent/ladle/models"
)

func TestCache_SetGet(t *testing.T) {
	c := New(10)
	key := Key("https://example.com/r", "ingredients", "")
	resp := &models.ClipResponse{Success: true, Title: "Cached"}

	c.Set(key, resp)

	got, hit := c.Get(key, 60_000)
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Title != "Cached" {
		t.Errorf("title = %q, want %q", got.Title, "Cached")
	}
}

func TestCache_MaxAgeZeroDisablesLookup(t *testing.T) {
	c := New(10)
	key := Key("https://example.com/r", "ingredients", "")
	c.Set(key, &models.ClipResponse{Success: true})

	if _, hit := c.Get(key, 0); hit {
		t.Error("maxAge 0 must never hit")
	}
}

func TestCache_KeyVariesByRequestShape(t *testing.T) {
	base := Key("https://example.com/r", "ingredients", "")
	if Key("https://example.com/r", "page", "") == base {
		t.Error("note format must be part of the key")
	}
	if Key("https://example.com/r", "ingredients", "#card") == base {
		t.Error("css selector must be part of the key")
	}
}

func TestCache_CapacityEviction(t *testing.T) {
	c := New(5)
	for i := 0; i < 10; i++ {
		c.Set(Key(fmt.Sprintf("https://example.com/%d", i), "", ""), &models.ClipResponse{})
	}

	c.mu.RLock()
	size := len(c.store)
	c.mu.RUnlock()
	if size > 5 {
		t.Errorf("store holds %d entries, capacity is 5", size)
	}
}
