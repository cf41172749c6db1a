package tasks

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced task id does not exist.
var ErrNotFound = errors.New("task not found")

func notFound(id int64) error {
	return fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// StorageError wraps an I/O, driver or decoding failure of the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
