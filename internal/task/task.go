package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage"
)

// ManagerConfig is the configuration for the task manager.
type ManagerConfig struct {
	Repository storage.Repository
	Logger     log.Logger
	// TimeNow is used to set the creation time of new tasks.
	TimeNow func() time.Time
}

func (c *ManagerConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "task.Manager"})

	if c.TimeNow == nil {
		c.TimeNow = func() time.Time { return time.Now().UTC() }
	}

	return nil
}

// Manager owns the task collection and keeps it in sync with its repository.
//
// Queries never fail and return copies. Mutations are applied to a copy of the
// collection and only committed in memory once the repository save succeeded.
type Manager struct {
	repo    storage.Repository
	logger  log.Logger
	timeNow func() time.Time

	mu          sync.Mutex
	list        model.TaskList
	index       map[int]int // Task ID to position in list.
	loadWarning error
}

// NewManager creates a new manager loading the tasks from the repository.
//
// Corrupted persisted data is not fatal: the manager starts with an empty
// collection and the problem is available with LoadWarning.
func NewManager(ctx context.Context, cfg ManagerConfig) (*Manager, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m := &Manager{
		repo:    cfg.Repository,
		logger:  cfg.Logger,
		timeNow: cfg.TimeNow,
	}

	l, err := m.repo.Load(ctx)
	switch {
	case errors.Is(err, model.ErrCorrupted):
		m.logger.Warningf("Could not load tasks, starting with an empty list: %s", err)
		m.loadWarning = err
		l = &model.TaskList{}
	case err != nil:
		return nil, fmt.Errorf("could not load tasks: %w", err)
	case l == nil:
		l = &model.TaskList{}
	}

	m.commit(l.Copy())
	m.logger.Debugf("Manager loaded with %d tasks", len(m.list.Tasks))

	return m, nil
}

// LoadWarning returns the error that made the manager discard the persisted tasks, if any.
func (m *Manager) LoadWarning() error {
	return m.loadWarning
}

// Add creates a new pending task and persists it.
func (m *Manager) Add(ctx context.Context, title, dueDate string) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := model.NewTask(m.list.NextID(), title, dueDate, m.timeNow())
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	l := m.list.Copy()
	l.Tasks = append(l.Tasks, t)
	l.LastID = t.ID

	if err := m.save(ctx, l); err != nil {
		return model.Task{}, err
	}

	m.logger.Infof("Added task %d", t.ID)
	return t, nil
}

// Get returns the task with the ID.
func (m *Manager) Get(id int) (model.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return model.Task{}, false
	}

	return m.list.Tasks[i], true
}

// FindByName returns the tasks matching the title, case insensitive. If exact
// is false, any task containing title matches.
func (m *Manager) FindByName(title string, exact bool) []model.Task {
	title = strings.ToLower(title)
	return m.filter(func(t model.Task) bool {
		got := strings.ToLower(t.Title)
		if exact {
			return got == title
		}
		return strings.Contains(got, title)
	})
}

// All returns all the tasks in collection order.
func (m *Manager) All() []model.Task {
	return m.filter(func(model.Task) bool { return true })
}

// Pending returns the pending tasks in collection order.
func (m *Manager) Pending() []model.Task {
	return m.filter(func(t model.Task) bool { return t.Status == model.TaskStatusPending })
}

// History returns the done and failed tasks in collection order.
func (m *Manager) History() []model.Task {
	return m.filter(func(t model.Task) bool { return t.Status.Finished() })
}

// Recent returns up to count tasks, most recently created first. Tasks
// created at the same time keep their collection order.
func (m *Manager) Recent(count int) []model.Task {
	if count <= 0 {
		return []model.Task{}
	}

	tasks := m.All()
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	if len(tasks) > count {
		tasks = tasks[:count]
	}

	return tasks
}

// UpdateStatus sets the status of a task and persists it. It returns false if
// the task doesn't exist.
func (m *Manager) UpdateStatus(ctx context.Context, id int, status model.TaskStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("unknown task status %q: %w", status, model.ErrNotValid)
	}

	return m.update(ctx, id, func(t *model.Task) {
		t.Status = status
	})
}

// Edit replaces the title of a task and changes its due date as due says. It
// returns false if the task doesn't exist.
func (m *Manager) Edit(ctx context.Context, id int, title string, due model.DueDateUpdate) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, fmt.Errorf("task title is required: %w", model.ErrNotValid)
	}

	return m.update(ctx, id, func(t *model.Task) {
		t.Title = title
		t.DueDate = due.Apply(t.DueDate)
	})
}

// Remove deletes a task and persists the change. It returns false if the task
// doesn't exist. The ID of a removed task is not reused.
func (m *Manager) Remove(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return false, nil
	}

	l := m.list.Copy()
	l.LastID = max(l.LastID, l.MaxID())
	l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)

	if err := m.save(ctx, l); err != nil {
		return false, err
	}

	m.logger.Infof("Removed task %d", id)
	return true, nil
}

func (m *Manager) update(ctx context.Context, id int, f func(t *model.Task)) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return false, nil
	}

	l := m.list.Copy()
	f(&l.Tasks[i])

	if err := m.save(ctx, l); err != nil {
		return false, err
	}

	m.logger.Infof("Updated task %d", id)
	return true, nil
}

func (m *Manager) filter(keep func(t model.Task) bool) []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []model.Task{}
	for _, t := range m.list.Tasks {
		if keep(t) {
			tasks = append(tasks, t)
		}
	}

	return tasks
}

// save persists l and makes it the current list. Must be called with the lock held.
func (m *Manager) save(ctx context.Context, l model.TaskList) error {
	if err := m.repo.Save(ctx, l); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}

	m.commit(l)
	return nil
}

func (m *Manager) commit(l model.TaskList) {
	index := make(map[int]int, len(l.Tasks))
	for i, t := range l.Tasks {
		index[t.ID] = i
	}

	m.list = l
	m.index = index
}
