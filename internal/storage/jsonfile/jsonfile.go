package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/moby/sys/atomicwriter"
	"github.com/oklog/ulid/v2"

	"github.com/slok/tasks/internal/conventions"
	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
)

// RepositoryConfig is the configuration for the JSON file repository.
type RepositoryConfig struct {
	Path    string
	Logger  log.Logger
	TimeNow func() time.Time
}

func (c *RepositoryConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	if c.TimeNow == nil {
		c.TimeNow = func() time.Time { return time.Now().UTC() }
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.JSONFile"})
	return nil
}

// Repository is a storage.Repository that keeps all the tasks in a single JSON file.
//
// The file is a JSON array of task records, rewritten completely on every save.
// Writes are atomic (temporary file and rename), and a file that can't be decoded
// is copied aside before being reported as corrupted, so a later save never
// destroys the only copy of the user data.
type Repository struct {
	path    string
	logger  log.Logger
	timeNow func() time.Time
}

// NewRepository creates a new JSON file repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		path:    cfg.Path,
		logger:  cfg.Logger,
		timeNow: cfg.TimeNow,
	}, nil
}

// Load reads the task list from the JSON file.
func (r *Repository) Load(ctx context.Context) (*model.TaskList, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debugf("Tasks file %s missing, starting empty", r.path)
			return &model.TaskList{}, nil
		}
		return nil, fmt.Errorf("could not read tasks file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// An empty file has nothing worth backing up.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("tasks file %s is empty: %w", r.path, model.ErrCorrupted)
	}

	l, decodeErr := r.decode(data)
	if decodeErr == nil {
		r.logger.Debugf("Loaded %d tasks from %s", len(l.Tasks), r.path)
		return l, nil
	}

	backupPath, err := r.backup(data)
	if err != nil {
		return nil, fmt.Errorf("tasks file %s is corrupted (%s) and could not be backed up: %w", r.path, decodeErr, err)
	}
	r.logger.Warningf("Corrupted tasks file backed up at %s", backupPath)

	return nil, fmt.Errorf("invalid tasks file %s (backed up at %s): %w: %w", r.path, backupPath, model.ErrCorrupted, decodeErr)
}

// Save overwrites the JSON file with the task list.
func (r *Repository) Save(ctx context.Context, l model.TaskList) error {
	records := make([]taskRecord, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		records = append(records, newTaskRecord(t))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal tasks: %w", err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("could not create tasks file directory: %w", err)
	}

	if err := atomicwriter.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("could not write tasks file: %w", err)
	}

	r.logger.Debugf("Saved %d tasks to %s", len(l.Tasks), r.path)
	return nil
}

func (r *Repository) decode(data []byte) (*model.TaskList, error) {
	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("expected a JSON array of tasks")
	}

	now := r.timeNow()
	tasks := make([]model.Task, 0, len(records))
	seen := make(map[int]struct{}, len(records))

	var mErr *multierror.Error
	for i, rec := range records {
		t, err := rec.toModel(now)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("record %d: %w", i, err))
			continue
		}

		if _, ok := seen[t.ID]; ok {
			mErr = multierror.Append(mErr, fmt.Errorf("record %d: task id %d: %w", i, t.ID, model.ErrAlreadyExists))
			continue
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}

	if err := mErr.ErrorOrNil(); err != nil {
		return nil, err
	}

	l := &model.TaskList{Tasks: tasks}
	l.LastID = l.MaxID()

	return l, nil
}

func (r *Repository) backup(data []byte) (string, error) {
	backupPath := conventions.CorruptBackupPath(r.path, ulid.Make().String())
	if err := atomicwriter.WriteFile(backupPath, data, 0600); err != nil {
		return "", err
	}
	return backupPath, nil
}
