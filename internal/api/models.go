package api

import "github.com/phrazzld/tasktracker/internal/domain"

// CreateTaskRequest defines the payload for POST /api/tasks.
// Titles are limited to 1000 characters.
type CreateTaskRequest struct {
	Title     string `json:"title"     validate:"required,notblank,max=1000"`
	Completed bool   `json:"completed"`
}

// UpdateTaskRequest defines the payload for PATCH /api/tasks/{id}.
// Absent fields are left untouched; any other fields in the body, including
// "id", are ignored.
type UpdateTaskRequest struct {
	Title     *string `json:"title"     validate:"omitempty,notblank,max=1000"`
	Completed *bool   `json:"completed"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:     r.Title,
		Completed: r.Completed,
	}
}

// TaskResponse is the wire shape of a task.
type TaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func taskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
