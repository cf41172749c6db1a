package tasks

import (
	"context"
	"time"
)

// Store defines the persistence interface for tasks.
type Store interface {
	Create(ctx context.Context, t NewTask) (int64, error)
	Get(ctx context.Context, id int64) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	Update(ctx context.Context, id int64, p Patch) error
	Delete(ctx context.Context, id int64) error
	PurgeInactive(ctx context.Context, cutoff time.Time) ([]string, error)
	Close() error
}
