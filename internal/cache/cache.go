// Package cache provides the in-memory entry cache used in front of the
// ledger store.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pmarkov/probledger/internal/model"
)

// Cache defines the interface for caching ledger entries by event name
type Cache interface {
	Get(event string) (model.Entry, bool)
	Set(event string, entry model.Entry, ttl time.Duration)
	Delete(event string)
	Clear()
}

// Key derives the cache key for an event name. Hashing keeps arbitrary
// event names (spaces, path separators) out of the key space.
func Key(event string) string {
	hash := sha256.Sum256([]byte(event))
	return "probledger:v1:" + hex.EncodeToString(hash[:])
}
