package list

import (
	"context"
	"fmt"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
)

// View is the subset of tasks to list.
type View string

const (
	ViewPending View = "pending"
	ViewHistory View = "history"
	ViewRecent  View = "recent"
	ViewAll     View = "all"
)

// DefaultRecentCount is the number of tasks returned by the recent view when no count is requested.
const DefaultRecentCount = 5

// Querier knows how to query tasks.
type Querier interface {
	All() []model.Task
	Pending() []model.Task
	History() []model.Task
	Recent(count int) []model.Task
}

// ServiceConfig is the configuration for the list service.
type ServiceConfig struct {
	Querier Querier
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Querier == nil {
		return fmt.Errorf("querier is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service lists tasks by view.
type Service struct {
	querier Querier
	logger  log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		querier: cfg.Querier,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// View selects the tasks, defaults to pending.
	View View
	// Count is the maximum number of tasks of the recent view.
	Count int
}

// Run lists the tasks of the requested view.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	s.logger.Debugf("listing %q tasks", req.View)

	var tasks []model.Task
	switch req.View {
	case "", ViewPending:
		tasks = s.querier.Pending()
	case ViewHistory:
		tasks = s.querier.History()
	case ViewAll:
		tasks = s.querier.All()
	case ViewRecent:
		count := req.Count
		if count == 0 {
			count = DefaultRecentCount
		}
		if count < 0 {
			return nil, fmt.Errorf("recent count can't be negative, got: %d: %w", count, model.ErrNotValid)
		}
		tasks = s.querier.Recent(count)
	default:
		return nil, fmt.Errorf("unknown view %q (must be: pending, history, recent, all): %w", req.View, model.ErrNotValid)
	}

	s.logger.Debugf("found %d tasks", len(tasks))
	return tasks, nil
}
