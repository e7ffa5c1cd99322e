package store

import (
	"context"
	"time"

	"github.com/pmarkov/probledger/internal/cache"
	"github.com/pmarkov/probledger/internal/model"
)

// Cached wraps a Store with an in-memory read cache for Get. Every
// mutation invalidates the affected events, so reads never see a value
// older than the last local write.
type Cached struct {
	inner Store
	cache cache.Cache
	ttl   time.Duration
}

// NewCached creates a caching wrapper around the given store
func NewCached(inner Store, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{inner: inner, cache: c, ttl: ttl}
}

// Get returns the cached entry when present, falling back to the store
func (s *Cached) Get(ctx context.Context, event string) (model.Entry, error) {
	if entry, found := s.cache.Get(event); found {
		return entry, nil
	}

	entry, err := s.inner.Get(ctx, event)
	if err != nil {
		return model.Entry{}, err
	}

	s.cache.Set(event, entry, s.ttl)
	return entry, nil
}

// Put writes through to the store and invalidates the event
func (s *Cached) Put(ctx context.Context, entry model.Entry) error {
	if err := s.inner.Put(ctx, entry); err != nil {
		return err
	}
	s.cache.Delete(entry.Event)
	return nil
}

// Create inserts through to the store and invalidates the event
func (s *Cached) Create(ctx context.Context, entry model.Entry) error {
	if err := s.inner.Create(ctx, entry); err != nil {
		return err
	}
	s.cache.Delete(entry.Event)
	return nil
}

// List always reads from the store; listings are not cached
func (s *Cached) List(ctx context.Context) ([]model.Entry, error) {
	return s.inner.List(ctx)
}

// Delete removes the entry and invalidates the event
func (s *Cached) Delete(ctx context.Context, event string) error {
	if err := s.inner.Delete(ctx, event); err != nil {
		return err
	}
	s.cache.Delete(event)
	return nil
}

// Adjust applies the delta and invalidates the event
func (s *Cached) Adjust(ctx context.Context, event string, delta float64) (model.Entry, error) {
	entry, err := s.inner.Adjust(ctx, event, delta)
	if err != nil {
		return model.Entry{}, err
	}
	s.cache.Delete(event)
	return entry, nil
}

// Rename renames the entry and invalidates both names
func (s *Cached) Rename(ctx context.Context, oldEvent, newEvent string) error {
	if err := s.inner.Rename(ctx, oldEvent, newEvent); err != nil {
		return err
	}
	s.cache.Delete(oldEvent)
	s.cache.Delete(newEvent)
	return nil
}

// Swap swaps the entries and invalidates both events
func (s *Cached) Swap(ctx context.Context, eventA, eventB string) error {
	if err := s.inner.Swap(ctx, eventA, eventB); err != nil {
		return err
	}
	s.cache.Delete(eventA)
	s.cache.Delete(eventB)
	return nil
}

// Close clears the cache and closes the underlying store
func (s *Cached) Close() error {
	s.cache.Clear()
	return s.inner.Close()
}
