package worker

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pmarkov/probledger/internal/model"
	"github.com/pmarkov/probledger/internal/store"
)

// memStore is a minimal in-memory Store for batch tests
type memStore struct {
	mu      sync.Mutex
	entries map[string]model.Entry
}

func newMemStore(entries ...model.Entry) *memStore {
	s := &memStore{entries: make(map[string]model.Entry)}
	for _, e := range entries {
		s.entries[e.Event] = e
	}
	return s
}

func (s *memStore) Put(ctx context.Context, entry model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Event] = entry
	return nil
}

func (s *memStore) Create(ctx context.Context, entry model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.Event]; ok {
		return store.ErrExists
	}
	s.entries[entry.Event] = entry
	return nil
}

func (s *memStore) Get(ctx context.Context, event string) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[event]
	if !ok {
		return model.Entry{}, store.ErrNotFound
	}
	return entry, nil
}

func (s *memStore) List(ctx context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Entry
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

func (s *memStore) Delete(ctx context.Context, event string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[event]; !ok {
		return store.ErrNotFound
	}
	delete(s.entries, event)
	return nil
}

func (s *memStore) Adjust(ctx context.Context, event string, delta float64) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[event]
	if !ok {
		return model.Entry{}, store.ErrNotFound
	}
	entry.Value += delta
	entry.UpdatedAt = time.Now().UTC()
	s.entries[event] = entry
	return entry, nil
}

func (s *memStore) Rename(ctx context.Context, oldEvent, newEvent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[oldEvent]
	if !ok {
		return store.ErrNotFound
	}
	entry.Event = newEvent
	delete(s.entries, oldEvent)
	s.entries[newEvent] = entry
	return nil
}

func (s *memStore) Swap(ctx context.Context, eventA, eventB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.entries[eventA]
	if !ok {
		return store.ErrNotFound
	}
	b, ok := s.entries[eventB]
	if !ok {
		return store.ErrNotFound
	}
	a.Value, b.Value = b.Value, a.Value
	s.entries[eventA] = a
	s.entries[eventB] = b
	return nil
}

func (s *memStore) Close() error { return nil }

func TestBatchProcessor_Apply(t *testing.T) {
	st := newMemStore(
		model.Entry{Event: "rain", Value: 0.3},
		model.Entry{Event: "storm", Value: 0.1},
		model.Entry{Event: "drought", Value: 0.5},
	)
	processor := NewBatchProcessor(st, nil, 2)

	adjustments := []Adjustment{
		{Event: "rain", Delta: 0.2},
		{Event: "storm", Delta: 0.1},
		{Event: "drought", Delta: -0.3},
	}

	results := processor.Apply(context.Background(), adjustments)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Adjustment.Event, res.Error)
		}
	}

	entry, err := st.Get(context.Background(), "rain")
	if err != nil {
		t.Fatalf("get rain: %v", err)
	}
	if math.Abs(entry.Value-0.5) > 1e-12 {
		t.Errorf("expected rain = 0.5, got %v", entry.Value)
	}
}

func TestBatchProcessor_Apply_MissingEvent(t *testing.T) {
	st := newMemStore(model.Entry{Event: "rain", Value: 0.3})
	processor := NewBatchProcessor(st, nil, 2)

	results := processor.Apply(context.Background(), []Adjustment{
		{Event: "rain", Delta: 0.1},
		{Event: "unknown", Delta: 0.1},
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	errCount := 0
	for _, res := range results {
		if res.Error != nil {
			errCount++
			if !errors.Is(res.Error, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", res.Error)
			}
		}
	}
	if errCount != 1 {
		t.Errorf("expected 1 error, got %d", errCount)
	}
}

func TestBatchProcessor_Apply_Empty(t *testing.T) {
	processor := NewBatchProcessor(newMemStore(), nil, 2)

	results := processor.Apply(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_Apply_WithLimiter(t *testing.T) {
	st := newMemStore(model.Entry{Event: "rain", Value: 0.3})
	// High rate so the test stays fast; this just exercises the path
	processor := NewBatchProcessor(st, NewLimiter(1000, 10), 4)

	var adjustments []Adjustment
	for i := 0; i < 20; i++ {
		adjustments = append(adjustments, Adjustment{Event: "rain", Delta: 0.01})
	}

	results := processor.Apply(context.Background(), adjustments)
	if len(results) != 20 {
		t.Fatalf("expected 20 results, got %d", len(results))
	}

	entry, err := st.Get(context.Background(), "rain")
	if err != nil {
		t.Fatalf("get rain: %v", err)
	}
	if math.Abs(entry.Value-0.5) > 1e-9 {
		t.Errorf("expected rain = 0.5 after 20 adjustments, got %v", entry.Value)
	}
}

func TestBatchProcessor_Apply_CancelledContext(t *testing.T) {
	st := newMemStore(model.Entry{Event: "rain", Value: 0.3})
	processor := NewBatchProcessor(st, nil, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adjustments := []Adjustment{
		{Event: "rain", Delta: 0.1},
		{Event: "rain", Delta: 0.1},
		{Event: "rain", Delta: 0.1},
	}

	results := processor.Apply(ctx, adjustments)

	// Refused submissions still produce a failed result each
	if len(results) != len(adjustments) {
		t.Fatalf("expected %d results, got %d", len(adjustments), len(results))
	}
	for _, res := range results {
		if res.Error == nil {
			t.Errorf("expected a failed result for %s, got success", res.Adjustment.Event)
		}
	}
}

func TestReadAdjustmentsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	content := `adjustments:
  - event: rain
    delta: 0.2
  - event: storm
    delta: -0.1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write batch file: %v", err)
	}

	adjustments, err := ReadAdjustmentsFile(path)
	if err != nil {
		t.Fatalf("ReadAdjustmentsFile failed: %v", err)
	}

	if len(adjustments) != 2 {
		t.Fatalf("expected 2 adjustments, got %d", len(adjustments))
	}
	if adjustments[0].Event != "rain" || adjustments[0].Delta != 0.2 {
		t.Errorf("unexpected first adjustment: %+v", adjustments[0])
	}
	if adjustments[1].Event != "storm" || adjustments[1].Delta != -0.1 {
		t.Errorf("unexpected second adjustment: %+v", adjustments[1])
	}
}

func TestReadAdjustmentsFile_MissingEventName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	content := `adjustments:
  - delta: 0.2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write batch file: %v", err)
	}

	if _, err := ReadAdjustmentsFile(path); err == nil {
		t.Error("expected error for adjustment without event name")
	}
}

func TestReadAdjustmentsFile_Missing(t *testing.T) {
	if _, err := ReadAdjustmentsFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_ApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	content := `adjustments:
  - event: rain
    delta: 0.2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write batch file: %v", err)
	}

	st := newMemStore(model.Entry{Event: "rain", Value: 0.3})
	processor := NewBatchProcessor(st, nil, 2)

	results, err := processor.ApplyFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ApplyFile failed: %v", err)
	}
	if len(results) != 1 || results[0].Error != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if math.Abs(results[0].Entry.Value-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %v", results[0].Entry.Value)
	}
}
