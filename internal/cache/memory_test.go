package cache

import (
	"testing"
	"time"

	"github.com/pmarkov/probledger/internal/model"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("rain", model.Entry{Event: "rain", Value: 0.3}, time.Minute)

	entry, found := c.Get("rain")
	if !found {
		t.Fatal("expected rain to be cached")
	}
	if entry.Event != "rain" || entry.Value != 0.3 {
		t.Errorf("unexpected cached entry: %+v", entry)
	}
}

func TestMemoryCache_GetMissing(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected missing event to not be cached")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("rain", model.Entry{Event: "rain", Value: 0.3}, time.Minute)
	c.Delete("rain")

	if _, found := c.Get("rain"); found {
		t.Error("expected rain to be gone after delete")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("rain", model.Entry{Event: "rain", Value: 0.3}, time.Minute)
	c.Set("storm", model.Entry{Event: "storm", Value: 0.9}, time.Minute)
	c.Clear()

	if _, found := c.Get("rain"); found {
		t.Error("expected cache to be empty after clear")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("rain", model.Entry{Event: "rain", Value: 0.3}, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("rain"); found {
		t.Error("expected rain to expire")
	}
}

func TestKey_Deterministic(t *testing.T) {
	if Key("rain") != Key("rain") {
		t.Error("expected identical keys for identical events")
	}
	if Key("rain") == Key("storm") {
		t.Error("expected different keys for different events")
	}
}
