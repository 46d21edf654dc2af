package config

import (
	"fmt"

	"mood-tracker/internal/repository/sqlite"
)

// CreateRepository creates the sqlite task repository described by the configuration
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if !IsInMemoryDSN(config.Store.DSN) {
		return nil, &ConfigError{Field: "store.dsn", Message: "sqlite backend only supports in-memory databases"}
	}

	repo, err := sqlite.NewWithTimeout(config.Store.DSN, config.Store.QueryTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}
