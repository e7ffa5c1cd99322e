package model

import "time"

// Config holds the full probledger configuration
type Config struct {
	Ledger LedgerConfig `yaml:"ledger" json:"ledger"`
	Cache  CacheConfig  `yaml:"cache" json:"cache"`
	Batch  BatchConfig  `yaml:"batch" json:"batch"`
	Output OutputConfig `yaml:"output" json:"output"`
}

// LedgerConfig selects and locates the persistence backend
type LedgerConfig struct {
	Backend string `yaml:"backend" json:"backend"` // "yaml" or "sqlite"
	Path    string `yaml:"path" json:"path"`       // ledger file path (empty: ~/.probledger/ledger.<ext>)
}

// CacheConfig controls the in-memory read cache in front of the ledger
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled"`
	TTL             time.Duration `yaml:"ttl" json:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
}

// BatchConfig controls concurrent bulk imports
type BatchConfig struct {
	Concurrency  int     `yaml:"concurrency" json:"concurrency"`
	OpsPerSecond float64 `yaml:"ops_per_second" json:"ops_per_second"`
	Burst        int     `yaml:"burst" json:"burst"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults, the lowest layer of the
// config hierarchy (flags > env > file > defaults)
func DefaultConfig() Config {
	return Config{
		Ledger: LedgerConfig{
			Backend: "yaml",
			Path:    "",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Batch: BatchConfig{
			Concurrency:  4,
			OpsPerSecond: 200,
			Burst:        20,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
