package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the state of a task.
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusFailed  TaskStatus = "failed"
)

// TaskStatuses are all the known task statuses.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusDone, TaskStatusFailed}

// Valid returns true if the status is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusDone, TaskStatusFailed:
		return true
	}
	return false
}

// Finished returns true for the statuses that end a task lifecycle.
func (s TaskStatus) Finished() bool {
	return s == TaskStatusDone || s == TaskStatusFailed
}

// ParseTaskStatus parses a user provided status, it's case insensitive.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown task status %q (must be: pending, done, failed): %w", s, ErrNotValid)
	}
	return status, nil
}

// Task is a single trackable unit of work.
type Task struct {
	ID    int
	Title string
	// DueDate is free form, empty means the task has no due date.
	DueDate   string
	Status    TaskStatus
	CreatedAt time.Time
}

// NewTask returns a new pending task. A zero createdAt defaults to now.
func NewTask(id int, title, dueDate string, createdAt time.Time) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, fmt.Errorf("task title is required: %w", ErrNotValid)
	}

	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return Task{
		ID:        id,
		Title:     title,
		DueDate:   dueDate,
		Status:    TaskStatusPending,
		CreatedAt: createdAt,
	}, nil
}

// Validate validates the task model.
func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("task id must be positive, got: %d: %w", t.ID, ErrNotValid)
	}

	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task %d title is required: %w", t.ID, ErrNotValid)
	}

	if !t.Status.Valid() {
		return fmt.Errorf("task %d status %q is unknown: %w", t.ID, t.Status, ErrNotValid)
	}

	if t.CreatedAt.IsZero() {
		return fmt.Errorf("task %d created at is required: %w", t.ID, ErrNotValid)
	}

	return nil
}

// HasDueDate returns true if the task has a due date set.
func (t Task) HasDueDate() bool { return t.DueDate != "" }

// String renders the task as "[id] title (due X) [status]".
func (t Task) String() string {
	due := ""
	if t.HasDueDate() {
		due = fmt.Sprintf(" (due %s)", t.DueDate)
	}
	return fmt.Sprintf("[%d] %s%s [%s]", t.ID, t.Title, due, t.Status)
}

// TaskList is the full task collection as it's persisted.
type TaskList struct {
	Tasks []Task
	// LastID is the highest ID ever allocated, it can be higher than any
	// ID present if tasks were removed.
	LastID int
}

// MaxID returns the highest ID present on the list tasks.
func (l TaskList) MaxID() int {
	maxID := 0
	for _, t := range l.Tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID
}

// NextID returns the ID that should be allocated to a new task.
func (l TaskList) NextID() int {
	return max(l.LastID, l.MaxID()) + 1
}

// Copy returns a deep copy of the list.
func (l TaskList) Copy() TaskList {
	tasks := make([]Task, len(l.Tasks))
	copy(tasks, l.Tasks)
	return TaskList{Tasks: tasks, LastID: l.LastID}
}

// DueDateUpdate describes how an edit changes the due date of a task.
// The zero value keeps the current due date.
type DueDateUpdate struct {
	op    dueDateOp
	value string
}

type dueDateOp int

const (
	dueDateKeep dueDateOp = iota
	dueDateClear
	dueDateSet
)

// KeepDueDate leaves the due date untouched.
func KeepDueDate() DueDateUpdate { return DueDateUpdate{op: dueDateKeep} }

// ClearDueDate removes the due date.
func ClearDueDate() DueDateUpdate { return DueDateUpdate{op: dueDateClear} }

// SetDueDate sets the due date to v. An empty v is the same as ClearDueDate.
func SetDueDate(v string) DueDateUpdate {
	if v == "" {
		return ClearDueDate()
	}
	return DueDateUpdate{op: dueDateSet, value: v}
}

// Apply returns the resulting due date from the current one.
func (u DueDateUpdate) Apply(current string) string {
	switch u.op {
	case dueDateClear:
		return ""
	case dueDateSet:
		return u.value
	default:
		return current
	}
}
