package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pmarkov/probledger/internal/cache"
	"github.com/pmarkov/probledger/internal/model"
	"github.com/pmarkov/probledger/internal/store"
	"github.com/spf13/viper"
)

// loadConfig builds the effective configuration: defaults, overlaid by
// the config file and environment (via viper), overlaid by flags
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("ledger.backend") {
		cfg.Ledger.Backend = viper.GetString("ledger.backend")
	}
	if viper.IsSet("ledger.path") {
		cfg.Ledger.Path = viper.GetString("ledger.path")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("cache.cleanup_interval") {
		cfg.Cache.CleanupInterval = viper.GetDuration("cache.cleanup_interval")
	}
	if viper.IsSet("batch.concurrency") {
		cfg.Batch.Concurrency = viper.GetInt("batch.concurrency")
	}
	if viper.IsSet("batch.ops_per_second") {
		cfg.Batch.OpsPerSecond = viper.GetFloat64("batch.ops_per_second")
	}
	if viper.IsSet("batch.burst") {
		cfg.Batch.Burst = viper.GetInt("batch.burst")
	}

	// Flags win over everything
	if backend != "" {
		cfg.Ledger.Backend = backend
	}
	if ledgerPath != "" {
		cfg.Ledger.Path = ledgerPath
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// openStore opens the configured ledger backend, wrapped in the read
// cache unless disabled
func openStore(cfg model.Config) (store.Store, error) {
	path := cfg.Ledger.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error finding home directory: %w", err)
		}
		switch cfg.Ledger.Backend {
		case "sqlite":
			path = filepath.Join(home, ".probledger", "ledger.db")
		default:
			path = filepath.Join(home, ".probledger", "ledger.yaml")
		}
	}

	var (
		s   store.Store
		err error
	)
	switch cfg.Ledger.Backend {
	case "yaml":
		s, err = store.NewYAMLFile(path)
	case "sqlite":
		s, err = store.NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q (want yaml or sqlite)", cfg.Ledger.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Ledger: %s (%s)\n", path, cfg.Ledger.Backend)
	}

	if cfg.Cache.Enabled {
		mem := cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		s = store.NewCached(s, mem, cfg.Cache.TTL)
	}
	return s, nil
}

// parseFloatArg parses a numeric CLI argument. Any float parses: range
// checking is deliberately not done anywhere in probledger.
func parseFloatArg(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, raw)
	}
	return v, nil
}

// printEntry writes one entry to stdout, as JSON or plain text
func printEntry(entry model.Entry, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling entry: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s\t%g\n", entry.Event, entry.Value)
	return nil
}
