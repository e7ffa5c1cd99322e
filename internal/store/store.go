// Package store persists probability entries. Two backends are provided:
// a YAML file ledger and a SQLite database, behind the same interface.
package store

import (
	"context"
	"errors"

	"github.com/pmarkov/probledger/internal/model"
)

// ErrNotFound is returned when no entry exists for the requested event
var ErrNotFound = errors.New("entry not found")

// ErrExists is returned when an operation would overwrite an entry that
// must not already exist (e.g. the target name of a rename)
var ErrExists = errors.New("entry already exists")

// Store defines the persistence interface for probability entries.
// Implementations are safe for concurrent use.
type Store interface {
	// Put inserts or replaces the entry for entry.Event
	Put(ctx context.Context, entry model.Entry) error

	// Create inserts the entry only if entry.Event is not taken yet,
	// returning ErrExists otherwise. The check and the insert are one
	// atomic step.
	Create(ctx context.Context, entry model.Entry) error

	// Get returns the entry for the given event, or ErrNotFound
	Get(ctx context.Context, event string) (model.Entry, error)

	// List returns all entries ordered by event name, then value
	List(ctx context.Context) ([]model.Entry, error)

	// Delete removes the entry for the given event, or returns ErrNotFound
	Delete(ctx context.Context, event string) error

	// Adjust adds delta to the stored value and returns the updated entry.
	// The result is stored unvalidated, exactly as the addition produced it.
	Adjust(ctx context.Context, event string, delta float64) (model.Entry, error)

	// Rename changes an entry's event name. Returns ErrNotFound if old is
	// missing and ErrExists if an entry already holds the new name.
	Rename(ctx context.Context, oldEvent, newEvent string) error

	// Swap exchanges the values of two entries in a single atomic step
	Swap(ctx context.Context, eventA, eventB string) error

	// Close releases any resources held by the store
	Close() error
}
