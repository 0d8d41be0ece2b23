package storage

import (
	"context"

	"github.com/slok/tasks/internal/model"
)

// Repository is the interface for task collection persistence.
//
// The collection is always loaded and saved as a whole. Loading a store that
// doesn't exist yet returns an empty list. Loading a store with data that can't
// be decoded returns an error wrapping model.ErrCorrupted.
type Repository interface {
	Load(ctx context.Context) (*model.TaskList, error)
	Save(ctx context.Context, l model.TaskList) error
}
