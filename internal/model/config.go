package model

import "fmt"

// StorageType is the kind of backing store used to persist tasks.
type StorageType string

const (
	StorageTypeJSON   StorageType = "json"
	StorageTypeSQLite StorageType = "sqlite"
)

// DefaultPageSize is the number of tasks shown per page when not configured.
const DefaultPageSize = 5

// Config is the application configuration.
type Config struct {
	Storage StorageType
	// DataPath is the JSON file or SQLite database path depending on the storage.
	DataPath string
	PageSize int
}

// Validate validates the configuration.
func (c Config) Validate() error {
	switch c.Storage {
	case "", StorageTypeJSON, StorageTypeSQLite:
	default:
		return fmt.Errorf("storage %q is unknown (must be: json, sqlite): %w", c.Storage, ErrNotValid)
	}

	if c.PageSize < 0 {
		return fmt.Errorf("page size can't be negative, got: %d: %w", c.PageSize, ErrNotValid)
	}

	return nil
}

// Merge returns a copy of c where the empty fields are filled with the ones of fallback.
func (c Config) Merge(fallback Config) Config {
	if c.Storage == "" {
		c.Storage = fallback.Storage
	}
	if c.DataPath == "" {
		c.DataPath = fallback.DataPath
	}
	if c.PageSize == 0 {
		c.PageSize = fallback.PageSize
	}
	return c
}
