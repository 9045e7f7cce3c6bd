package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Task is a single to-do item. Tasks have no timestamps or ordering field;
// their position in the store is their display order.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskPatch carries the fields of a partial update. A nil field is left
// untouched when the patch is applied.
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// NewTask creates a Task with a freshly generated ID.
// Returns a validation error if the title is empty or whitespace-only.
func NewTask(title string, completed bool) (Task, error) {
	task := Task{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: completed,
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t Task) Validate() error {
	if t.ID == "" {
		return NewValidationError("id", "is required", ErrInvalidID)
	}

	if err := validateTitle(t.Title); err != nil {
		return err
	}

	return nil
}

// Validate checks the fields that are present in the patch.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		return validateTitle(*p.Title)
	}
	return nil
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply returns a copy of t with the patch's fields merged in.
// The ID is never changed by a patch.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyContent)
	}
	return nil
}
