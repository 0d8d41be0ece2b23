package commands

import (
	"context"
	"fmt"

	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage"
	"github.com/slok/tasks/internal/storage/jsonfile"
	"github.com/slok/tasks/internal/storage/sqlite"
	"github.com/slok/tasks/internal/task"
)

// newManager returns a task manager over the configured storage. The returned
// close func must be called once the manager is not used anymore.
func newManager(ctx context.Context, rootCmd *RootCommand) (m *task.Manager, closeFunc func() error, err error) {
	logger := rootCmd.Logger
	closeFunc = func() error { return nil }

	var repo storage.Repository
	switch rootCmd.Config.Storage {
	case model.StorageTypeSQLite:
		sqliteRepo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: rootCmd.Config.DataPath,
			Logger: logger,
		})
		if err != nil {
			return nil, closeFunc, fmt.Errorf("could not create sqlite repository: %w", err)
		}
		repo = sqliteRepo
		closeFunc = sqliteRepo.Close
	default:
		jsonRepo, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{
			Path:   rootCmd.Config.DataPath,
			Logger: logger,
		})
		if err != nil {
			return nil, closeFunc, fmt.Errorf("could not create json file repository: %w", err)
		}
		repo = jsonRepo
	}

	m, err = task.NewManager(ctx, task.ManagerConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		_ = closeFunc()
		return nil, func() error { return nil }, fmt.Errorf("could not create task manager: %w", err)
	}

	// Logs can be disabled, the user must always know the stored tasks were discarded.
	if w := m.LoadWarning(); w != nil {
		fmt.Fprintf(rootCmd.Stderr, "Warning: %s\n", w)
	}

	return m, closeFunc, nil
}
