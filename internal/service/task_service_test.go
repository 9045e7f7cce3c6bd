package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/persistence"
	"github.com/phrazzld/tasktracker/internal/platform/jsonfile"
	"github.com/phrazzld/tasktracker/internal/platform/memory"
	"github.com/phrazzld/tasktracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingPersister records how many times Flush was called.
type countingPersister struct {
	mu      sync.Mutex
	flushes int
}

func (p *countingPersister) Flush(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushes++
}

func (p *countingPersister) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushes
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (TaskService, *countingPersister) {
	t.Helper()
	persister := &countingPersister{}
	svc, err := NewTaskService(memory.NewTaskStore(testLogger()), persister, testLogger())
	require.NoError(t, err)
	return svc, persister
}

func TestNewTaskService_RequiresDependencies(t *testing.T) {
	_, err := NewTaskService(nil, &countingPersister{}, testLogger())
	assert.Error(t, err)

	_, err = NewTaskService(memory.NewTaskStore(testLogger()), nil, testLogger())
	assert.Error(t, err)

	svc, err := NewTaskService(memory.NewTaskStore(nil), &countingPersister{}, nil)
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestTaskService_MutationsFlush(t *testing.T) {
	svc, persister := newTestService(t)
	ctx := context.Background()

	assert.Empty(t, svc.ListTasks(ctx))
	assert.Equal(t, 0, persister.Count(), "listing does not flush")

	task, err := svc.CreateTask(ctx, "Buy milk", false)
	require.NoError(t, err)
	assert.Equal(t, 1, persister.Count())

	done := true
	_, err = svc.UpdateTask(ctx, task.ID, domain.TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, 2, persister.Count())

	svc.DeleteTask(ctx, task.ID)
	assert.Equal(t, 3, persister.Count())

	svc.DeleteTask(ctx, "missing")
	assert.Equal(t, 4, persister.Count(), "no-op delete still flushes")
}

func TestTaskService_CreateInvalid(t *testing.T) {
	svc, persister := newTestService(t)

	_, err := svc.CreateTask(context.Background(), "", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTask)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, persister.Count(), "rejected mutation does not flush")
}

func TestTaskService_UpdateUnknown(t *testing.T) {
	svc, persister := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, "Keep", false)
	require.NoError(t, err)
	before := svc.ListTasks(ctx)

	done := true
	_, err = svc.UpdateTask(ctx, "missing", domain.TaskPatch{Completed: &done})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, before, svc.ListTasks(ctx))
	assert.Equal(t, 1, persister.Count())
}

func TestTaskService_EmptyPatchDoesNotFlush(t *testing.T) {
	svc, persister := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "Keep", false)
	require.NoError(t, err)
	require.Equal(t, 1, persister.Count())

	got, err := svc.UpdateTask(ctx, task.ID, domain.TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, task, got)
	assert.Equal(t, 1, persister.Count(), "empty patch does not flush")

	_, err = svc.UpdateTask(ctx, "missing", domain.TaskPatch{})
	assert.ErrorIs(t, err, ErrTaskNotFound, "unknown id is still reported")
}

func TestTaskService_InvalidPatchKeepsStoreContext(t *testing.T) {
	svc, persister := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "Keep", false)
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdateTask(ctx, task.ID, domain.TaskPatch{Title: &empty})
	assert.ErrorIs(t, err, ErrInvalidTask)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "update", storeErr.Operation)
	assert.Equal(t, 1, persister.Count())
}

func TestNewTaskServiceError(t *testing.T) {
	assert.Nil(t, NewTaskServiceError("op", "msg", nil))

	err := NewTaskServiceError("op", "msg", errors.New("boom"))
	var svcErr *TaskServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "op", svcErr.Operation)
	assert.Equal(t, "task service op failed: msg: boom", err.Error())
}

// TestTaskService_BuyMilkScenario runs the full create, toggle, delete flow
// against the real coalescer and data file.
func TestTaskService_BuyMilkScenario(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")

	tasks := memory.NewTaskStore(testLogger())
	file := jsonfile.New(path, jsonfile.Options{}, testLogger())
	coalescer := persistence.NewCoalescer(tasks, file, testLogger())
	svc, err := NewTaskService(tasks, coalescer, testLogger())
	require.NoError(t, err)

	settle := func() {
		waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		require.NoError(t, coalescer.Wait(waitCtx))
	}

	created, err := svc.CreateTask(ctx, "Buy milk", false)
	require.NoError(t, err)
	assert.Len(t, svc.ListTasks(ctx), 1)
	assert.False(t, created.Completed)

	done := true
	_, err = svc.UpdateTask(ctx, created.ID, domain.TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, svc.ListTasks(ctx)[0].Completed)

	settle()
	onDisk, err := file.Load(ctx)
	require.NoError(t, err)
	require.Len(t, onDisk, 1)
	assert.Equal(t, created.ID, onDisk[0].ID)
	assert.True(t, onDisk[0].Completed)

	svc.DeleteTask(ctx, created.ID)
	assert.Empty(t, svc.ListTasks(ctx))

	settle()
	onDisk, err = file.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, onDisk)
}
