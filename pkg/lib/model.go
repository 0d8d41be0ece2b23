package lib

import (
	"time"

	"github.com/slok/tasks/internal/app/list"
	"github.com/slok/tasks/internal/model"
)

// StorageType identifies the backend where tasks are persisted.
type StorageType string

const (
	// StorageJSON stores the tasks in a JSON file.
	StorageJSON StorageType = "json"
	// StorageSQLite stores the tasks in a SQLite database.
	StorageSQLite StorageType = "sqlite"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	// TaskStatusPending is the status of new tasks.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusDone indicates the task was completed.
	TaskStatusDone TaskStatus = "done"
	// TaskStatusFailed indicates the task was abandoned.
	TaskStatusFailed TaskStatus = "failed"
)

// Task represents a task returned by the SDK.
//
// This is a copy of the task at the time of the call, changing it has no effect.
type Task struct {
	// ID is the unique identifier, IDs are never reused.
	ID int
	// Title is the task title.
	Title string
	// DueDate is the free form due date. Empty means no due date.
	DueDate string
	// Status is the current lifecycle state.
	Status TaskStatus
	// CreatedAt is when the task was created.
	CreatedAt time.Time
}

// View selects a subset of tasks in [Client.ListTasks].
type View string

const (
	// ViewPending lists the pending tasks in creation order.
	ViewPending View = "pending"
	// ViewHistory lists the done and failed tasks in creation order.
	ViewHistory View = "history"
	// ViewRecent lists the most recently created tasks first.
	ViewRecent View = "recent"
	// ViewAll lists all the tasks in creation order.
	ViewAll View = "all"
)

// ListTasksOpts configures task listing.
//
// Pass nil to [Client.ListTasks] to list the pending tasks.
type ListTasksOpts struct {
	// View is the subset of tasks to list. Default: [ViewPending].
	View View
	// Count is the number of tasks [ViewRecent] returns. Default: 5.
	Count int
}

// EditTaskOpts configures a task edition.
type EditTaskOpts struct {
	// Title is the new task title, required.
	Title string
	// DueDate sets a new due date, nil keeps the current one.
	DueDate *string
	// ClearDueDate removes the due date. Can't be used with DueDate.
	ClearDueDate bool
}

func fromInternalTask(t model.Task) Task {
	return Task{
		ID:        t.ID,
		Title:     t.Title,
		DueDate:   t.DueDate,
		Status:    TaskStatus(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

func fromInternalTaskList(ts []model.Task) []Task {
	result := make([]Task, len(ts))
	for i, t := range ts {
		result[i] = fromInternalTask(t)
	}
	return result
}

func toInternalListRequest(opts *ListTasksOpts) list.Request {
	req := list.Request{View: list.ViewPending}
	if opts == nil {
		return req
	}

	if opts.View != "" {
		req.View = list.View(opts.View)
	}
	req.Count = opts.Count

	return req
}
