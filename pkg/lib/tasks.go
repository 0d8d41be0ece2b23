package lib

import (
	"context"
	"fmt"

	"github.com/slok/tasks/internal/model"
)

// AddTask adds a new pending task and persists it.
//
// Returns [ErrNotValid] if the title is empty.
func (c *Client) AddTask(ctx context.Context, title, dueDate string) (*Task, error) {
	t, err := c.manager.Add(ctx, title, dueDate)
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalTask(t)
	return &out, nil
}

// GetTask returns a task by its ID.
//
// Returns [ErrNotFound] if the task does not exist.
func (c *Client) GetTask(ctx context.Context, id int) (*Task, error) {
	t, ok := c.manager.Get(id)
	if !ok {
		return nil, mapError(fmt.Errorf("task %d: %w", id, model.ErrNotFound))
	}

	out := fromInternalTask(t)
	return &out, nil
}

// ListTasks returns the tasks of a view.
//
// Pass nil opts to list the pending tasks.
func (c *Client) ListTasks(ctx context.Context, opts *ListTasksOpts) ([]Task, error) {
	ts, err := c.lister.Run(ctx, toInternalListRequest(opts))
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTaskList(ts), nil
}

// FindTasks returns the tasks whose title contains the query, or is equal to it
// when exact is set. The match is case insensitive.
func (c *Client) FindTasks(ctx context.Context, query string, exact bool) ([]Task, error) {
	return fromInternalTaskList(c.manager.FindByName(query, exact)), nil
}

// SetTaskStatus sets the status of a task and persists it.
//
// Returns [ErrNotFound] if the task does not exist, or [ErrNotValid] if the
// status is unknown.
func (c *Client) SetTaskStatus(ctx context.Context, id int, status TaskStatus) (*Task, error) {
	ok, err := c.manager.UpdateStatus(ctx, id, model.TaskStatus(status))
	if err != nil {
		return nil, mapError(err)
	}
	if !ok {
		return nil, mapError(fmt.Errorf("task %d: %w", id, model.ErrNotFound))
	}

	return c.GetTask(ctx, id)
}

// EditTask changes the title and the due date of a task and persists it.
//
// Returns [ErrNotFound] if the task does not exist, or [ErrNotValid] if the
// options are not valid.
func (c *Client) EditTask(ctx context.Context, id int, opts EditTaskOpts) (*Task, error) {
	due := model.KeepDueDate()
	switch {
	case opts.ClearDueDate && opts.DueDate != nil:
		return nil, fmt.Errorf("due date can't be set and cleared at the same time: %w", ErrNotValid)
	case opts.ClearDueDate:
		due = model.ClearDueDate()
	case opts.DueDate != nil:
		due = model.SetDueDate(*opts.DueDate)
	}

	ok, err := c.manager.Edit(ctx, id, opts.Title, due)
	if err != nil {
		return nil, mapError(err)
	}
	if !ok {
		return nil, mapError(fmt.Errorf("task %d: %w", id, model.ErrNotFound))
	}

	return c.GetTask(ctx, id)
}

// RemoveTask removes a task and persists the change. The ID is not reused.
//
// Returns [ErrNotFound] if the task does not exist.
func (c *Client) RemoveTask(ctx context.Context, id int) error {
	ok, err := c.manager.Remove(ctx, id)
	if err != nil {
		return mapError(err)
	}
	if !ok {
		return mapError(fmt.Errorf("task %d: %w", id, model.ErrNotFound))
	}

	return nil
}
