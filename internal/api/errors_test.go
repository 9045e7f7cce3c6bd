package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/tasktracker/internal/api/shared"
	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/service"
	"github.com/phrazzld/tasktracker/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"service not found", service.ErrTaskNotFound, http.StatusNotFound},
		{"store not found", fmt.Errorf("wrapped: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"invalid task", service.ErrInvalidTask, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"validation error", domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyContent), http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"not found", service.ErrTaskNotFound, "Task not found"},
		{"validation detail", domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyContent), "Invalid title: cannot be empty"},
		{"generic invalid", service.ErrInvalidTask, "Invalid task data"},
		{"empty body", shared.ErrEmptyBody, "Request body is required"},
		{"leaks nothing", errors.New("open /etc/tasks.json: permission denied"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&CreateTaskRequest{})
	assert.Equal(t, "Invalid title: required field", SanitizeValidationError(err))

	err = domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyContent)
	assert.Equal(t, "Invalid title: cannot be empty", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
