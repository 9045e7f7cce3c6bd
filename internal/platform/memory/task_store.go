package memory

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/store"
)

// TaskStore implements store.TaskStore over an ordered slice.
// A single mutex serializes every operation.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []domain.Task
	logger *slog.Logger
}

// NewTaskStore creates an empty TaskStore.
// If logger is nil, slog.Default() is used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		tasks:  make([]domain.Task, 0),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// List implements store.TaskStore.
func (s *TaskStore) List() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(title string, completed bool) (domain.Task, error) {
	task, err := domain.NewTask(title, completed)
	if err != nil {
		return domain.Task{}, store.NewStoreError("task", "create", "validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	count := len(s.tasks)
	s.mu.Unlock()

	s.logger.Debug("task created",
		slog.String("task_id", task.ID),
		slog.Int("task_count", count))

	return task, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(id string, patch domain.TaskPatch) (domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return domain.Task{}, store.NewStoreError("task", "update", "validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, store.ErrTaskNotFound
	}

	s.tasks[i] = patch.Apply(s.tasks[i])

	s.logger.Debug("task updated", slog.String("task_id", id))
	return s.tasks[i], nil
}

// Delete implements store.TaskStore.
// Every task carrying id is removed.
func (s *TaskStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	// Clear the tail so dropped tasks are not retained by the backing array.
	clear(s.tasks[len(kept):])
	s.tasks = kept

	if removed == 0 {
		s.logger.Debug("delete of unknown task ignored", slog.String("task_id", id))
		return
	}
	s.logger.Debug("task deleted",
		slog.String("task_id", id),
		slog.Int("task_count", len(s.tasks)))
}

// Replace implements store.TaskStore.
// Tasks without an ID and later duplicates of an ID are dropped so that
// every ID in the store stays unique and addressable.
func (s *TaskStore) Replace(tasks []domain.Task) {
	next := make([]domain.Task, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			s.logger.Warn("dropping task without id", slog.Int("position", i))
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.logger.Warn("dropping task with duplicate id",
				slog.String("task_id", t.ID),
				slog.Int("position", i))
			continue
		}
		seen[t.ID] = struct{}{}
		next = append(next, t)
	}

	s.mu.Lock()
	s.tasks = next
	s.mu.Unlock()

	s.logger.Info("task collection replaced",
		slog.Int("task_count", len(next)),
		slog.Int("dropped", len(tasks)-len(next)))
}

// indexOf returns the position of the task with the given ID, or -1.
// The caller must hold s.mu.
func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
