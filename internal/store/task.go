package store

import "github.com/phrazzld/tasktracker/internal/domain"

// TaskStore defines the interface for the ordered task collection.
// Implementations must apply each operation atomically with respect to the
// others: no caller may observe a half-applied mutation.
type TaskStore interface {
	// List returns all tasks in insertion order.
	// The returned slice is a copy and is never nil.
	List() []domain.Task

	// Create appends a new task with a freshly generated ID and returns it.
	// Returns an error wrapping ErrInvalidEntity and domain.ErrValidation
	// if the title is empty.
	Create(title string, completed bool) (domain.Task, error)

	// Update merges the fields present in patch into the task with the given ID.
	// Returns ErrTaskNotFound if no task has that ID; the store is left unchanged.
	Update(id string, patch domain.TaskPatch) (domain.Task, error)

	// Delete removes the task with the given ID.
	// Deleting an unknown ID is a no-op.
	Delete(id string)

	// Replace installs tasks as the full collection. It is used once at
	// startup with the contents of the data file.
	Replace(tasks []domain.Task)
}
