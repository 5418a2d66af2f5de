package store

import "github.com/josephgoksu/taskman/models"

// TaskStore defines the interface for task persistence.
// It outlines the contract for managing tasks, including CRUD operations,
// backup, restore, exchange with other files, and resource cleanup.
// Tasks returned by a TaskStore are copies; mutating them does not change the store.
type TaskStore interface {
	// Load replaces the in-memory collection with the contents of the data file.
	// A missing or blank file yields an empty collection.
	Load() error

	// Save writes the whole collection to the data file.
	Save() error

	// Add creates a new incomplete task from the input and persists it.
	// It returns the created task with its generated ID and creation time.
	Add(in models.TaskInput) (models.Task, error)

	// Get retrieves a task by its exact identifier.
	// It returns ErrNotFound if no such task exists.
	Get(id string) (models.Task, error)

	// Resolve retrieves a task by its exact identifier or a unique ID prefix.
	// It returns ErrNotFound or ErrAmbiguousID when the input does not name exactly one task.
	Resolve(idOrPrefix string) (models.Task, error)

	// List returns the tasks matching every field set in the filter,
	// in insertion order. An empty filter returns all tasks.
	List(filter Filter) []models.Task

	// Update applies a partial change to an existing task and persists it.
	// It returns the updated task or ErrNotFound.
	Update(id string, update models.TaskUpdate) (models.Task, error)

	// Delete removes a task and persists the collection.
	// It returns the removed task or ErrNotFound.
	Delete(id string) (models.Task, error)

	// Complete marks a task as complete and persists it.
	// A task that is already complete is returned unchanged with models.ErrAlreadyCompleted.
	Complete(id string) (models.Task, error)

	// Backup copies the data file to dest, or to "<data file>.backup" when dest is empty.
	// It returns the path that was written.
	Backup(dest string) (string, error)

	// Restore replaces the collection with the tasks in src after validating them.
	// This operation is destructive to current data.
	Restore(src string) error

	// Export writes every task to path in the given format (json, yaml or csv).
	// An empty format is inferred from the path's extension.
	// It returns the number of tasks written.
	Export(path, format string) (int, error)

	// Import reads tasks from path and appends those whose ID is not already present.
	Import(path, format string) (ImportResult, error)

	// Path returns the location of the data file.
	Path() string

	// Close releases any resources held by the store.
	Close() error
}

var _ TaskStore = (*FileTaskStore)(nil)
