package lib

import (
	"context"
	"fmt"
	"os"

	"github.com/slok/tasks/internal/app/list"
	"github.com/slok/tasks/internal/conventions"
	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage"
	"github.com/slok/tasks/internal/storage/jsonfile"
	"github.com/slok/tasks/internal/storage/sqlite"
	"github.com/slok/tasks/internal/task"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will use the ~/.tasks/tasks.json file, the same one the CLI uses.
type Config struct {
	// Storage is the backend used to persist the tasks.
	// Default: [StorageJSON].
	Storage StorageType

	// DataPath is the JSON file or the SQLite database path.
	// Default: ~/.tasks/tasks.json or ~/.tasks/tasks.db depending on the storage.
	DataPath string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Storage == "" {
		c.Storage = StorageJSON
	}

	if c.Storage != StorageJSON && c.Storage != StorageSQLite {
		return fmt.Errorf("unsupported storage type: %s: %w", c.Storage, ErrNotValid)
	}

	if c.DataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DataPath = conventions.DataPath(home, model.StorageType(c.Storage))
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for managing tasks programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	manager *task.Manager
	lister  *list.Service
	logger  log.Logger
	closeFn func() error
}

// New creates a new SDK client and loads the stored tasks.
//
// The caller must call [Client.Close] when done to release the storage. Typically
// used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		repo    storage.Repository
		closeFn func() error
	)
	switch cfg.Storage {
	case StorageSQLite:
		r, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.DataPath,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		repo = r
		closeFn = r.Close
	default:
		r, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{
			Path:   cfg.DataPath,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		repo = r
	}

	manager, err := task.NewManager(ctx, task.ManagerConfig{
		Repository: repo,
		Logger:     cfg.Logger,
	})
	if err != nil {
		if closeFn != nil {
			_ = closeFn()
		}
		return nil, mapError(fmt.Errorf("could not load tasks: %w", err))
	}

	lister, err := list.NewService(list.ServiceConfig{
		Querier: manager,
		Logger:  cfg.Logger,
	})
	if err != nil {
		if closeFn != nil {
			_ = closeFn()
		}
		return nil, fmt.Errorf("could not create list service: %w", err)
	}

	return &Client{
		manager: manager,
		lister:  lister,
		logger:  cfg.Logger,
		closeFn: closeFn,
	}, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// LoadWarning returns why the stored tasks were discarded when the client was
// created, nil if they were loaded correctly.
func (c *Client) LoadWarning() error {
	return c.manager.LoadWarning()
}
