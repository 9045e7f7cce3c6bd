package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Buy milk", false)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(task.ID)
	assert.NoError(t, parseErr, "ID should be a valid UUID")
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Completed)

	other, err := NewTask("Buy milk", true)
	require.NoError(t, err)
	assert.NotEqual(t, task.ID, other.ID, "IDs must never be reused")
	assert.True(t, other.Completed)
}

func TestNewTaskRejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := NewTask(title, false)
		require.Error(t, err, "title %q", title)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.True(t, errors.Is(err, ErrEmptyContent))

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "title", vErr.Field)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{"valid", Task{ID: "abc", Title: "x"}, nil},
		{"missing id", Task{Title: "x"}, ErrInvalidID},
		{"missing title", Task{ID: "abc"}, ErrEmptyContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.task.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTaskPatchApply(t *testing.T) {
	t.Parallel()

	original := Task{ID: "id-1", Title: "Write report", Completed: false}

	done := true
	patched := TaskPatch{Completed: &done}.Apply(original)
	assert.Equal(t, Task{ID: "id-1", Title: "Write report", Completed: true}, patched)
	assert.False(t, original.Completed, "Apply must not mutate its argument")

	title := "Write final report"
	patched = TaskPatch{Title: &title}.Apply(patched)
	assert.Equal(t, Task{ID: "id-1", Title: "Write final report", Completed: true}, patched)

	assert.Equal(t, original, TaskPatch{}.Apply(original))
	assert.True(t, TaskPatch{}.IsEmpty())
}

func TestTaskPatchValidate(t *testing.T) {
	t.Parallel()

	blank := " "
	assert.ErrorIs(t, TaskPatch{Title: &blank}.Validate(), ErrValidation)

	done := false
	assert.NoError(t, TaskPatch{Completed: &done}.Validate())
	assert.NoError(t, TaskPatch{}.Validate())
}
