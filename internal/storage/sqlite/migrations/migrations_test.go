package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/storage/sqlite/migrations"
)

func TestMigrator(t *testing.T) {
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.NewMigrator(db, log.Noop)
	require.NoError(t, err)

	_, ok, err := m.Version(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Up(ctx))
	// Running again is a no-op.
	require.NoError(t, m.Up(ctx))

	version, ok, err := m.Version(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(1), version)

	_, err = db.ExecContext(ctx, `INSERT INTO tasks (id, position, title, status, created_at) VALUES (1, 0, 'a', 'pending', 0)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO tasks (id, position, title, status, created_at) VALUES (2, 1, 'b', 'archived', 0)`)
	assert.Error(t, err)

	require.NoError(t, m.Down(ctx))
	_, ok, err = m.Version(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewMigratorRequiresDB(t *testing.T) {
	_, err := migrations.NewMigrator(nil, log.Noop)
	assert.Error(t, err)
}
