// Package model holds the concrete types the probledger ledger works
// with: persisted entries and tool configuration.
package model

import (
	"time"

	"github.com/pmarkov/probledger/internal/record"
)

// Entry is a persisted probability record: the concrete string/float64
// instantiation of record.Record plus bookkeeping metadata.
type Entry struct {
	Event     string    `json:"event" yaml:"event"`                               // Event name (ledger key)
	Value     float64   `json:"value" yaml:"value"`                               // Probability value, stored as given
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"` // Last mutation time
}

// Record returns the entry as a probability record, dropping metadata.
func (e Entry) Record() record.Record[string, float64] {
	return record.New(e.Event, e.Value)
}

// FromRecord creates an entry from a probability record.
func FromRecord(r record.Record[string, float64], at time.Time) Entry {
	return Entry{
		Event:     r.EventName(),
		Value:     r.Value(),
		UpdatedAt: at,
	}
}

// Less orders entries the way records order: event name first, then value.
func (e Entry) Less(other Entry) bool {
	return e.Record().Less(other.Record())
}
