package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
//
// Unlike the JSON file, the database keeps the last allocated task ID, so IDs
// of removed tasks are never reused across runs.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository, running the pending migrations.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// Load returns all the tasks in their collection order.
func (r *Repository) Load(ctx context.Context) (*model.TaskList, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, due_date, status, created_at
		FROM tasks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	var lastID int
	err = r.db.QueryRowContext(ctx, `SELECT last_id FROM task_sequence WHERE id = 1`).Scan(&lastID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("could not query task sequence: %w", err)
	}

	r.logger.Debugf("Loaded %d tasks from database", len(tasks))
	return &model.TaskList{Tasks: tasks, LastID: lastID}, nil
}

// Save replaces all the stored tasks with the list ones in a single transaction.
func (r *Repository) Save(ctx context.Context, l model.TaskList) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not delete tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, title, due_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, t := range l.Tasks {
		var dueDate *string
		if t.HasDueDate() {
			dueDate = &t.DueDate
		}

		_, err := stmt.ExecContext(ctx, t.ID, i, t.Title, dueDate, string(t.Status), t.CreatedAt.UnixNano())
		if err != nil {
			return fmt.Errorf("could not insert task %d: %w", t.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO task_sequence (id, last_id) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET last_id = excluded.last_id
	`, max(l.LastID, l.MaxID()))
	if err != nil {
		return fmt.Errorf("could not update task sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved %d tasks in database", len(l.Tasks))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var t model.Task
	var dueDate sql.NullString
	var status string
	var createdAt int64

	if err := s.Scan(&t.ID, &t.Title, &dueDate, &status, &createdAt); err != nil {
		return model.Task{}, err
	}

	t.DueDate = dueDate.String
	t.Status = model.TaskStatus(status)
	t.CreatedAt = time.Unix(0, createdAt).UTC()

	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	return t, nil
}
