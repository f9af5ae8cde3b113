package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/phrazzld/tasks-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withRollback runs fn with a store bound to a transaction that is always
// rolled back, so integration tests leave the database untouched.
func withRollback(t *testing.T, db *sql.DB, fn func(s store.TaskStore)) {
	t.Helper()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		fn(NewPostgresTaskStore(db, nil).WithTx(tx))
	})
}

func TestPostgresTaskStore_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	withRollback(t, db, func(s store.TaskStore) {
		task, err := domain.NewTask("Buy milk", false)
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, task))
		assert.False(t, task.CreatedAt.IsZero(), "createdAt must be assigned by the database")

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, taskIDs(tasks), task.ID)

		updated, err := s.UpdateCompletion(ctx, task.ID, true)
		require.NoError(t, err)
		assert.True(t, updated.IsDone)
		assert.Equal(t, "Buy milk", updated.Description)
		assert.True(t, task.CreatedAt.Equal(updated.CreatedAt))

		require.NoError(t, s.Delete(ctx, task.ID))
		assert.ErrorIs(t, s.Delete(ctx, task.ID), store.ErrTaskNotFound)

		_, err = s.UpdateCompletion(ctx, uuid.New(), true)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func taskIDs(tasks []*domain.Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
