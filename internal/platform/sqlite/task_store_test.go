package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*TaskStore, *sql.DB) {
	t.Helper()

	db, err := Open(context.Background(), MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewTaskStore(db, nil), db
}

func createTask(t *testing.T, s *TaskStore, description string, isDone bool) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(description, isDone)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), task))
	return task
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ", nil)
	assert.Error(t, err)
}

func TestTaskStore_CreateAndList(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	before := time.Now().UTC().Add(-time.Minute)
	milk := createTask(t, s, "Buy milk", false)
	dog := createTask(t, s, "Walk dog", true)

	assert.False(t, milk.CreatedAt.IsZero())
	assert.True(t, milk.CreatedAt.After(before), "createdAt %v should be recent", milk.CreatedAt)

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, milk.ID, tasks[0].ID)
	assert.Equal(t, "Buy milk", tasks[0].Description)
	assert.False(t, tasks[0].IsDone)
	assert.True(t, milk.CreatedAt.Equal(tasks[0].CreatedAt))
	assert.Equal(t, dog.ID, tasks[1].ID)
	assert.True(t, tasks[1].IsDone)
}

func TestTaskStore_CreateDuplicate(t *testing.T) {
	s, _ := newTestStore(t)

	task := createTask(t, s, "Buy milk", false)
	dup := &domain.Task{ID: task.ID, Description: "Another"}

	assert.ErrorIs(t, s.Create(context.Background(), dup), store.ErrDuplicate)
}

func TestTaskStore_CreateInvalid(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Create(context.Background(), &domain.Task{ID: uuid.New(), Description: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskStore_GetByID(t *testing.T) {
	s, _ := newTestStore(t)
	task := createTask(t, s, "Buy milk", false)

	got, err := s.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	keep := createTask(t, s, "Keep", false)
	drop := createTask(t, s, "Drop", false)

	require.NoError(t, s.Delete(ctx, drop.ID))
	assert.ErrorIs(t, s.Delete(ctx, drop.ID), store.ErrTaskNotFound)
	assert.ErrorIs(t, s.Delete(ctx, uuid.New()), store.ErrTaskNotFound)

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)
}

func TestTaskStore_UpdateCompletion(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	task := createTask(t, s, "Buy milk", false)

	updated, err := s.UpdateCompletion(ctx, task.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsDone)
	assert.Equal(t, task.Description, updated.Description)
	assert.True(t, task.CreatedAt.Equal(updated.CreatedAt))

	// Idempotent: setting the same value again succeeds with identical state.
	again, err := s.UpdateCompletion(ctx, task.ID, true)
	require.NoError(t, err)
	assert.Equal(t, updated, again)

	back, err := s.UpdateCompletion(ctx, task.ID, false)
	require.NoError(t, err)
	assert.False(t, back.IsDone)

	_, err = s.UpdateCompletion(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "unknown id must not create a row")
}

func TestTaskStore_WithTx(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	task := createTask(t, s, "Buy milk", false)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	_, err = s.WithTx(tx).UpdateCompletion(ctx, task.ID, true)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDone, "rolled back update must not persist")
}

func TestTaskStore_ConcurrentCreates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := domain.NewTask("task", false)
			if err != nil {
				errs <- err
				return
			}
			errs <- s.Create(ctx, task)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, n)
	seen := make(map[uuid.UUID]bool, n)
	for _, task := range tasks {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}
