package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/tasks/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "tasks"
	}

	// go test changes the CWD to the test package directory, so relative paths
	// would point to the wrong place.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("TASKS_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("tasks binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "TASKS_INTEGRATION"
		envBinary     = "TASKS_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary: os.Getenv(envBinary),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// Env is the isolated environment of a test run, the configuration and data
// live in a temp dir.
type Env struct {
	Config   Config
	Dir      string
	DataPath string
	Storage  string
}

// NewEnv returns a new isolated environment for the storage.
func NewEnv(t *testing.T, config Config, storage string) Env {
	t.Helper()

	dir := t.TempDir()
	file := "tasks.json"
	if storage == "sqlite" {
		file = "tasks.db"
	}

	return Env{
		Config:   config,
		Dir:      dir,
		DataPath: filepath.Join(dir, file),
		Storage:  storage,
	}
}

// RunTasksCmd runs a tasks command in the environment with logging suppressed.
// The storage is selected with env vars to exercise their configuration path.
func RunTasksCmd(ctx context.Context, e Env, args ...string) (stdout, stderr []byte, err error) {
	env := []string{
		"TASKS_CONFIG=" + filepath.Join(e.Dir, "config.yaml"),
		"TASKS_STORAGE=" + e.Storage,
		"TASKS_DATA_PATH=" + e.DataPath,
	}

	return testutils.RunTasks(ctx, env, e.Config.Binary, args, true)
}
