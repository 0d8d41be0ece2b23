package jsonfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage/jsonfile"
)

var loadTime = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func newRepo(t *testing.T, path string) *jsonfile.Repository {
	t.Helper()
	repo, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{
		Path:    path,
		Logger:  log.Noop,
		TimeNow: func() time.Time { return loadTime },
	})
	require.NoError(t, err)
	return repo
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func TestNewRepository(t *testing.T) {
	_, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{})
	assert.Error(t, err)

	repo, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{Path: "tasks.json"})
	assert.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "tasks.json")
	repo := newRepo(t, path)

	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 123456789, time.UTC)
	exp := model.TaskList{
		Tasks: []model.Task{
			{ID: 1, Title: "Buy milk", Status: model.TaskStatusPending, CreatedAt: createdAt},
			{ID: 3, Title: "Pay rent", DueDate: "2025-01-01", Status: model.TaskStatusDone, CreatedAt: createdAt.Add(time.Minute)},
			{ID: 4, Title: "Fix bike", Status: model.TaskStatusFailed, CreatedAt: createdAt.Add(time.Hour)},
		},
		LastID: 4,
	}

	require.NoError(t, repo.Save(ctx, exp))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, exp, *got)
}

func TestRepositorySaveFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	repo := newRepo(t, path)

	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	err := repo.Save(ctx, model.TaskList{Tasks: []model.Task{
		{ID: 1, Title: "Buy milk", Status: model.TaskStatusPending, CreatedAt: createdAt},
		{ID: 2, Title: "Pay rent", DueDate: "monday", Status: model.TaskStatusDone, CreatedAt: createdAt},
	}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	exp := `[
  {
    "title": "Buy milk",
    "due_date": null,
    "status": "pending",
    "created_at": "2026-01-30T10:00:00Z",
    "id": 1
  },
  {
    "title": "Pay rent",
    "due_date": "monday",
    "status": "done",
    "created_at": "2026-01-30T10:00:00Z",
    "id": 2
  }
]`
	assert.Equal(t, exp, string(data))
}

func TestRepositorySaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	repo := newRepo(t, path)

	require.NoError(t, repo.Save(context.Background(), model.TaskList{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestRepositoryLoad(t *testing.T) {
	tests := map[string]struct {
		data         *string
		expList      *model.TaskList
		expCorrupted bool
		expBackup    bool
	}{
		"A missing file should load an empty list.": {
			data:    nil,
			expList: &model.TaskList{},
		},
		"An empty array should load an empty list.": {
			data:    ptr(`[]`),
			expList: &model.TaskList{Tasks: []model.Task{}},
		},
		"Records without status or created at should get defaults.": {
			data: ptr(`[{"title": "Buy milk", "due_date": null, "id": 2}]`),
			expList: &model.TaskList{
				Tasks:  []model.Task{{ID: 2, Title: "Buy milk", Status: model.TaskStatusPending, CreatedAt: loadTime}},
				LastID: 2,
			},
		},
		"Naive ISO timestamps should be read as UTC.": {
			data: ptr(`[{"title": "a", "due_date": "friday", "status": "done", "created_at": "2025-03-04T05:06:07.123456", "id": 1}]`),
			expList: &model.TaskList{
				Tasks: []model.Task{{
					ID:        1,
					Title:     "a",
					DueDate:   "friday",
					Status:    model.TaskStatusDone,
					CreatedAt: time.Date(2025, 3, 4, 5, 6, 7, 123456000, time.UTC),
				}},
				LastID: 1,
			},
		},
		"Unix timestamps should be accepted.": {
			data: ptr(`[{"title": "a", "status": "failed", "created_at": 1700000000, "id": 1}]`),
			expList: &model.TaskList{
				Tasks:  []model.Task{{ID: 1, Title: "a", Status: model.TaskStatusFailed, CreatedAt: time.Unix(1700000000, 0).UTC()}},
				LastID: 1,
			},
		},
		"Invalid JSON should be reported as corrupted and backed up.": {
			data:         ptr(`[{"title": `),
			expCorrupted: true,
			expBackup:    true,
		},
		"A non array document should be reported as corrupted.": {
			data:         ptr(`{"tasks": []}`),
			expCorrupted: true,
			expBackup:    true,
		},
		"A null document should be reported as corrupted.": {
			data:         ptr(`null`),
			expCorrupted: true,
			expBackup:    true,
		},
		"Unknown statuses should be reported as corrupted.": {
			data:         ptr(`[{"title": "a", "status": "archived", "id": 1}]`),
			expCorrupted: true,
			expBackup:    true,
		},
		"Duplicated ids should be reported as corrupted.": {
			data:         ptr(`[{"title": "a", "id": 1}, {"title": "b", "id": 1}]`),
			expCorrupted: true,
			expBackup:    true,
		},
		"Missing ids should be reported as corrupted.": {
			data:         ptr(`[{"title": "a"}]`),
			expCorrupted: true,
			expBackup:    true,
		},
		"Empty titles should be reported as corrupted.": {
			data:         ptr(`[{"title": "", "id": 1}]`),
			expCorrupted: true,
			expBackup:    true,
		},
		"Invalid timestamps should be reported as corrupted.": {
			data:         ptr(`[{"title": "a", "created_at": "yesterday", "id": 1}]`),
			expCorrupted: true,
			expBackup:    true,
		},
		"An empty file should be reported as corrupted without backup.": {
			data:         ptr("  \n"),
			expCorrupted: true,
			expBackup:    false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "tasks.json")
			if test.data != nil {
				writeFile(t, path, *test.data)
			}
			repo := newRepo(t, path)

			got, err := repo.Load(context.Background())

			backups, globErr := filepath.Glob(path + ".corrupt-*")
			require.NoError(t, globErr)

			if test.expCorrupted {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrCorrupted))
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expList, got)
			}

			if test.expBackup {
				require.Len(t, backups, 1)
				data, err := os.ReadFile(backups[0])
				require.NoError(t, err)
				assert.Equal(t, *test.data, string(data))

				// The original file is not touched.
				data, err = os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, *test.data, string(data))
			} else {
				assert.Empty(t, backups)
			}
		})
	}
}

func TestRepositoryLoadUnreadable(t *testing.T) {
	// A directory in place of the file can't be read, this is not corruption.
	path := t.TempDir()
	repo := newRepo(t, path)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrCorrupted))
}

func TestRepositoryContextCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	writeFile(t, path, `[]`)
	repo := newRepo(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx)
	assert.Equal(t, context.Canceled, err)

	err = repo.Save(ctx, model.TaskList{})
	assert.Equal(t, context.Canceled, err)
}

func ptr(s string) *string { return &s }
