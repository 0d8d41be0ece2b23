package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	// Initial is the task list the repository starts with.
	Initial *model.TaskList
	Logger  log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	if c.Initial == nil {
		c.Initial = &model.TaskList{}
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	list   model.TaskList
	saves  int
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		list:   cfg.Initial.Copy(),
		logger: cfg.Logger,
	}, nil
}

// Load returns a copy of the stored task list.
func (r *Repository) Load(ctx context.Context) (*model.TaskList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy
	l := r.list.Copy()
	return &l, nil
}

// Save replaces the stored task list.
func (r *Repository) Save(ctx context.Context, l model.TaskList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.list = l.Copy()
	r.saves++
	r.logger.Debugf("Saved %d tasks in repository", len(l.Tasks))

	return nil
}

// Saves returns the number of times the list has been saved.
func (r *Repository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.saves
}
