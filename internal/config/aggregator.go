package config

import (
	"errors"

	"github.com/andrew-solarstorm/go-packages/common"
)

type AggregatorConfig struct {
	// DBPath is the path to the BoltDB file for pool persistence.
	// Default: "./data/router.db"
	DBPath string

	// PersistenceEnabled controls whether pools are persisted to disk.
	// Default: true
	PersistenceEnabled bool

	// SnapshotPath points at a JSON or YAML pool snapshot loaded at start.
	// Default: "" (none)
	SnapshotPath string

	// QuoteCacheSize bounds the quote LRU. 0 disables caching.
	// Default: 1024
	QuoteCacheSize int

	// QuoteTimeoutMs bounds a single quote request.
	// Default: 2000
	QuoteTimeoutMs int
}

func (c *AggregatorConfig) Key() string {
	return AGGREGATOR_CONFIG_KEY
}

func (c *AggregatorConfig) Load() error {
	c.DBPath = common.GetEnvOrDefault("AGGREGATOR_DB_PATH", "./data/router.db")
	c.PersistenceEnabled = common.GetEnvOrDefault("AGGREGATOR_PERSISTENCE_ENABLED", "true") == "true"
	c.SnapshotPath = common.GetEnvOrDefault("AGGREGATOR_SNAPSHOT_PATH", "")
	c.QuoteCacheSize = common.GetEnvOrDefaultInt("AGGREGATOR_QUOTE_CACHE_SIZE", 1024)
	c.QuoteTimeoutMs = common.GetEnvOrDefaultInt("AGGREGATOR_QUOTE_TIMEOUT_MS", 2000)
	return c.Validate()
}

func (c *AggregatorConfig) Validate() error {
	if c.PersistenceEnabled && c.DBPath == "" {
		return errors.New("aggregator: persistence enabled without a db path")
	}
	if c.QuoteCacheSize < 0 {
		return errors.New("aggregator: negative quote cache size")
	}
	if c.QuoteTimeoutMs <= 0 {
		return errors.New("aggregator: quote timeout must be positive")
	}
	return nil
}
