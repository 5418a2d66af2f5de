package store

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/taskman/internal/util"
)

var (
	// ErrNotFound is returned when no task matches the given ID.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguousID is returned when an ID prefix matches more than one task.
	ErrAmbiguousID = util.ErrAmbiguousID
	// ErrStorage classifies every failure to read, decode or write the data file.
	ErrStorage = errors.New("storage error")
)

// StorageError records a failed file operation against the store's backing file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorage) match any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
