package io

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/tasks/internal/model"
)

// ConfigYAMLRepository loads the application configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads the configuration from a YAML file and returns a validated domain model.
// A missing file is not an error and returns an empty configuration.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.Config, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Config{}, nil
		}
		return model.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Config{}, ctx.Err()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.Config{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m := cfg.toModel()
	if err := m.Validate(); err != nil {
		return model.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return m, nil
}

// Config represents the YAML structure for the application configuration.
type Config struct {
	Storage  string `yaml:"storage"`
	DataPath string `yaml:"data_path"`
	PageSize int    `yaml:"page_size"`
}

func (c Config) toModel() model.Config {
	return model.Config{
		Storage:  model.StorageType(c.Storage),
		DataPath: c.DataPath,
		PageSize: c.PageSize,
	}
}
