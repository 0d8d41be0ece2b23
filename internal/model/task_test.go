package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/model"
)

func TestNewTask(t *testing.T) {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		id        int
		title     string
		dueDate   string
		createdAt time.Time
		expTask   *model.Task
		expErr    bool
	}{
		"a task with title should be pending": {
			id:        1,
			title:     "Buy milk",
			createdAt: createdAt,
			expTask:   &model.Task{ID: 1, Title: "Buy milk", Status: model.TaskStatusPending, CreatedAt: createdAt},
		},
		"a task with due date should keep it": {
			id:        2,
			title:     "Pay rent",
			dueDate:   "tomorrow",
			createdAt: createdAt,
			expTask:   &model.Task{ID: 2, Title: "Pay rent", DueDate: "tomorrow", Status: model.TaskStatusPending, CreatedAt: createdAt},
		},
		"empty title should fail": {
			id:     1,
			title:  "",
			expErr: true,
		},
		"blank title should fail": {
			id:     1,
			title:  "   ",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			task, err := model.NewTask(test.id, test.title, test.dueDate, test.createdAt)

			if test.expErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, *test.expTask, task)
		})
	}
}

func TestNewTaskDefaultsCreatedAt(t *testing.T) {
	before := time.Now().UTC()
	task, err := model.NewTask(1, "test", "", time.Time{})
	require.NoError(t, err)

	assert.False(t, task.CreatedAt.Before(before))
	assert.False(t, task.CreatedAt.After(time.Now().UTC()))
}

func TestTaskValidate(t *testing.T) {
	base := model.Task{
		ID:        1,
		Title:     "Buy milk",
		Status:    model.TaskStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	tests := map[string]struct {
		task   func() model.Task
		expErr bool
	}{
		"valid task": {
			task: func() model.Task { return base },
		},
		"zero id": {
			task: func() model.Task {
				tk := base
				tk.ID = 0
				return tk
			},
			expErr: true,
		},
		"empty title": {
			task: func() model.Task {
				tk := base
				tk.Title = ""
				return tk
			},
			expErr: true,
		},
		"unknown status": {
			task: func() model.Task {
				tk := base
				tk.Status = "archived"
				return tk
			},
			expErr: true,
		},
		"missing created at": {
			task: func() model.Task {
				tk := base
				tk.CreatedAt = time.Time{}
				return tk
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.task().Validate()
			if test.expErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskString(t *testing.T) {
	tests := map[string]struct {
		task   model.Task
		expStr string
	}{
		"without due date": {
			task:   model.Task{ID: 1, Title: "Buy milk", Status: model.TaskStatusPending},
			expStr: "[1] Buy milk [pending]",
		},
		"with due date": {
			task:   model.Task{ID: 7, Title: "Pay rent", DueDate: "2025-01-01", Status: model.TaskStatusDone},
			expStr: "[7] Pay rent (due 2025-01-01) [done]",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expStr, test.task.String())
		})
	}
}

func TestParseTaskStatus(t *testing.T) {
	tests := map[string]struct {
		input     string
		expStatus model.TaskStatus
		expErr    bool
	}{
		"pending":                     {input: "pending", expStatus: model.TaskStatusPending},
		"done":                        {input: "done", expStatus: model.TaskStatusDone},
		"failed":                      {input: "failed", expStatus: model.TaskStatusFailed},
		"case and spaces are ignored": {input: "  DoNe ", expStatus: model.TaskStatusDone},
		"unknown status should fail":  {input: "archived", expErr: true},
		"empty status should fail":    {input: "", expErr: true},
		"partial status should fail":  {input: "fail", expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			status, err := model.ParseTaskStatus(test.input)
			if test.expErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expStatus, status)
		})
	}
}

func TestTaskListNextID(t *testing.T) {
	tests := map[string]struct {
		list  model.TaskList
		expID int
	}{
		"empty list should start at 1": {
			list:  model.TaskList{},
			expID: 1,
		},
		"max id should be used": {
			list:  model.TaskList{Tasks: []model.Task{{ID: 3}, {ID: 9}, {ID: 4}}},
			expID: 10,
		},
		"last id higher than tasks should be used": {
			list:  model.TaskList{Tasks: []model.Task{{ID: 3}}, LastID: 6},
			expID: 7,
		},
		"last id lower than tasks should be ignored": {
			list:  model.TaskList{Tasks: []model.Task{{ID: 8}}, LastID: 2},
			expID: 9,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expID, test.list.NextID())
		})
	}
}

func TestTaskListCopy(t *testing.T) {
	list := model.TaskList{Tasks: []model.Task{{ID: 1, Title: "a"}}, LastID: 1}

	c := list.Copy()
	c.Tasks[0].Title = "changed"

	assert.Equal(t, "a", list.Tasks[0].Title)
	assert.Equal(t, 1, c.LastID)
}

func TestDueDateUpdate(t *testing.T) {
	tests := map[string]struct {
		update  model.DueDateUpdate
		current string
		expDue  string
	}{
		"zero value should keep": {
			update:  model.DueDateUpdate{},
			current: "monday",
			expDue:  "monday",
		},
		"keep should keep": {
			update:  model.KeepDueDate(),
			current: "monday",
			expDue:  "monday",
		},
		"clear should clear": {
			update:  model.ClearDueDate(),
			current: "monday",
			expDue:  "",
		},
		"set should replace": {
			update:  model.SetDueDate("2025-01-01"),
			current: "monday",
			expDue:  "2025-01-01",
		},
		"set on missing due date should set": {
			update: model.SetDueDate("2025-01-01"),
			expDue: "2025-01-01",
		},
		"set with empty value should clear": {
			update:  model.SetDueDate(""),
			current: "monday",
			expDue:  "",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expDue, test.update.Apply(test.current))
		})
	}
}
