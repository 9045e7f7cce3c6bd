package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/store"
)

// Persister flushes the task collection to durable storage.
// Flush never fails from the caller's point of view.
type Persister interface {
	Flush(ctx context.Context)
}

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns every task in display order.
	ListTasks(ctx context.Context) []domain.Task

	// CreateTask appends a new task and flushes.
	CreateTask(ctx context.Context, title string, completed bool) (domain.Task, error)

	// UpdateTask merges patch into an existing task and flushes.
	// Returns ErrTaskNotFound if the ID is unknown.
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)

	// DeleteTask removes a task if present and flushes.
	DeleteTask(ctx context.Context, id string)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks     store.TaskStore
	persister Persister
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(tasks store.TaskStore, persister Persister, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{Operation: "init", Message: "task store cannot be nil"}
	}
	if persister == nil {
		return nil, &TaskServiceError{Operation: "init", Message: "persister cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:     tasks,
		persister: persister,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context) []domain.Task {
	return s.tasks.List()
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, title string, completed bool) (domain.Task, error) {
	task, err := s.tasks.Create(title, completed)
	if err != nil {
		s.logger.DebugContext(ctx, "task rejected", slog.String("error", err.Error()))
		return domain.Task{}, NewTaskServiceError("create_task", "failed to create task", err)
	}

	s.persister.Flush(ctx)

	s.logger.InfoContext(ctx, "task created", slog.String("task_id", task.ID))
	return task, nil
}

// UpdateTask implements TaskService.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	task, err := s.tasks.Update(id, patch)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("update_task", "failed to update task", err)
	}

	// An empty patch leaves the collection untouched; nothing to persist.
	if patch.IsEmpty() {
		s.logger.DebugContext(ctx, "empty patch, flush skipped", slog.String("task_id", task.ID))
		return task, nil
	}

	s.persister.Flush(ctx)

	s.logger.InfoContext(ctx, "task updated",
		slog.String("task_id", task.ID),
		slog.Bool("completed", task.Completed))
	return task, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) {
	s.tasks.Delete(id)
	s.persister.Flush(ctx)

	s.logger.InfoContext(ctx, "task deleted", slog.String("task_id", id))
}
