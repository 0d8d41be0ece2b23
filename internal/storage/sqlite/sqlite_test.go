package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage/sqlite"
)

func taskFixture(id int, title string) model.Task {
	return model.Task{
		ID:        id,
		Title:     title,
		Status:    model.TaskStatusPending,
		CreatedAt: time.Date(2026, 1, 30, 10, 0, id, 42, time.UTC),
	}
}

func newRepo(t *testing.T, dbPath string) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: dbPath,
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestNewRepositoryRequiresPath(t *testing.T) {
	_, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{})
	assert.Error(t, err)
}

func TestRepositoryEmpty(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "tasks.db"))

	l, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, l.Tasks)
	assert.Equal(t, 0, l.LastID)
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, filepath.Join(t.TempDir(), "tasks.db"))

	t1 := taskFixture(3, "third")
	t2 := taskFixture(1, "first")
	t2.DueDate = "2025-01-01"
	t2.Status = model.TaskStatusDone
	t3 := taskFixture(2, "second")
	t3.Status = model.TaskStatusFailed

	// Collection order is not ID order and must be kept.
	exp := model.TaskList{Tasks: []model.Task{t1, t2, t3}, LastID: 5}
	require.NoError(t, repo.Save(ctx, exp))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, exp, *got)
}

func TestRepositorySaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, filepath.Join(t.TempDir(), "tasks.db"))

	require.NoError(t, repo.Save(ctx, model.TaskList{Tasks: []model.Task{taskFixture(1, "a"), taskFixture(2, "b")}}))
	require.NoError(t, repo.Save(ctx, model.TaskList{Tasks: []model.Task{taskFixture(1, "a")}, LastID: 2}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{taskFixture(1, "a")}, got.Tasks)
	assert.Equal(t, 2, got.LastID)
}

func TestRepositoryLastIDSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	repo := newRepo(t, dbPath)
	require.NoError(t, repo.Save(ctx, model.TaskList{Tasks: []model.Task{taskFixture(1, "a"), taskFixture(2, "b")}}))
	// Remove the task with the max ID.
	require.NoError(t, repo.Save(ctx, model.TaskList{Tasks: []model.Task{taskFixture(1, "a")}, LastID: 2}))
	require.NoError(t, repo.Close())

	repo = newRepo(t, dbPath)
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.NextID())
}

func TestRepositoryRejectsInvalidTasks(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, filepath.Join(t.TempDir(), "tasks.db"))

	bad := taskFixture(1, "a")
	bad.Status = "archived"
	err := repo.Save(ctx, model.TaskList{Tasks: []model.Task{bad}})
	assert.Error(t, err)

	dup := model.TaskList{Tasks: []model.Task{taskFixture(1, "a"), taskFixture(1, "b")}}
	err = repo.Save(ctx, dup)
	assert.Error(t, err)

	// Failed saves are rolled back.
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
}
