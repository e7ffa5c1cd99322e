package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pmarkov/probledger/internal/model"
	"gopkg.in/yaml.v3"
)

// YAMLFile implements Store on a single human-editable YAML file.
// The whole ledger is loaded and rewritten on each mutation, which is
// fine at the ledger sizes this tool targets.
type YAMLFile struct {
	path string
	mu   sync.Mutex
}

// ledgerFile is the on-disk document layout
type ledgerFile struct {
	Entries []model.Entry `yaml:"entries"`
}

// NewYAMLFile creates a YAML-file store at the given path. The file is
// created on first write.
func NewYAMLFile(path string) (*YAMLFile, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	return &YAMLFile{path: path}, nil
}

// load reads the ledger into an event-keyed map. A missing file is an
// empty ledger.
func (s *YAMLFile) load() (map[string]model.Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]model.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var doc ledgerFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ledger: %w", err)
	}

	entries := make(map[string]model.Entry, len(doc.Entries))
	for _, entry := range doc.Entries {
		entries[entry.Event] = entry
	}
	return entries, nil
}

func (s *YAMLFile) save(entries map[string]model.Entry) error {
	doc := ledgerFile{Entries: sortedEntries(entries)}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

func sortedEntries(entries map[string]model.Entry) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Put inserts or replaces the entry for entry.Event
func (s *YAMLFile) Put(ctx context.Context, entry model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}
	entries[entry.Event] = entry
	return s.save(entries)
}

// Create inserts the entry only if the event name is free. The check
// and the save happen under one lock.
func (s *YAMLFile) Create(ctx context.Context, entry model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[entry.Event]; ok {
		return fmt.Errorf("%w: %s", ErrExists, entry.Event)
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}
	entries[entry.Event] = entry
	return s.save(entries)
}

// Get returns the entry for the given event
func (s *YAMLFile) Get(ctx context.Context, event string) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return model.Entry{}, err
	}
	entry, ok := entries[event]
	if !ok {
		return model.Entry{}, ErrNotFound
	}
	return entry, nil
}

// List returns all entries ordered by event name, then value
func (s *YAMLFile) List(ctx context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	return sortedEntries(entries), nil
}

// Delete removes the entry for the given event
func (s *YAMLFile) Delete(ctx context.Context, event string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[event]; !ok {
		return ErrNotFound
	}
	delete(entries, event)
	return s.save(entries)
}

// Adjust adds delta to the stored value and returns the updated entry
func (s *YAMLFile) Adjust(ctx context.Context, event string, delta float64) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return model.Entry{}, err
	}
	entry, ok := entries[event]
	if !ok {
		return model.Entry{}, ErrNotFound
	}

	rec := entry.Record()
	rec.ChangeValue(delta)
	entry = model.FromRecord(rec, time.Now().UTC())
	entries[event] = entry

	if err := s.save(entries); err != nil {
		return model.Entry{}, err
	}
	return entry, nil
}

// Rename changes an entry's event name
func (s *YAMLFile) Rename(ctx context.Context, oldEvent, newEvent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entry, ok := entries[oldEvent]
	if !ok {
		return ErrNotFound
	}
	if _, ok := entries[newEvent]; ok {
		return fmt.Errorf("%w: %s", ErrExists, newEvent)
	}

	rec := entry.Record()
	rec.SetEventName(newEvent)
	delete(entries, oldEvent)
	entries[newEvent] = model.FromRecord(rec, time.Now().UTC())
	return s.save(entries)
}

// Swap exchanges the values of two entries
func (s *YAMLFile) Swap(ctx context.Context, eventA, eventB string) error {
	if eventA == eventB {
		return fmt.Errorf("cannot swap %q with itself", eventA)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entryA, ok := entries[eventA]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventA)
	}
	entryB, ok := entries[eventB]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventB)
	}

	recA, recB := entryA.Record(), entryB.Record()
	recA.Swap(&recB)
	// Swap exchanges names too; keep each ledger key and take the other's value
	recA.SetEventName(eventA)
	recB.SetEventName(eventB)

	now := time.Now().UTC()
	entries[eventA] = model.FromRecord(recA, now)
	entries[eventB] = model.FromRecord(recB, now)
	return s.save(entries)
}

// Close is a no-op for the file-backed store
func (s *YAMLFile) Close() error {
	return nil
}
