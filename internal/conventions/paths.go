package conventions

import (
	"fmt"
	"path/filepath"

	"github.com/slok/tasks/internal/model"
)

const (
	// DefaultDataDir is the default tasks data directory name (relative to home).
	DefaultDataDir = ".tasks"
	// ConfigFile is the filename of the YAML configuration.
	ConfigFile = "config.yaml"
	// JSONFile is the filename of the JSON tasks file.
	JSONFile = "tasks.json"
	// SQLiteFile is the filename of the SQLite tasks database.
	SQLiteFile = "tasks.db"
)

// DataDir returns the tasks data directory for a home directory.
func DataDir(home string) string {
	return filepath.Join(home, DefaultDataDir)
}

// ConfigPath returns the default configuration file path for a home directory.
func ConfigPath(home string) string {
	return filepath.Join(DataDir(home), ConfigFile)
}

// DataPath returns the default tasks file or database path of a storage type.
func DataPath(home string, st model.StorageType) string {
	if st == model.StorageTypeSQLite {
		return filepath.Join(DataDir(home), SQLiteFile)
	}
	return filepath.Join(DataDir(home), JSONFile)
}

// CorruptBackupPath returns the path where a corrupted tasks file is copied.
func CorruptBackupPath(path, id string) string {
	return fmt.Sprintf("%s.corrupt-%s", path, id)
}
