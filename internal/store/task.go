package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// Operation names recorded in StoreError.Operation for task statements.
// UpdateCompletion reports which of its two phases failed.
const (
	OpList     = "list"
	OpCreate   = "create"
	OpGet      = "get"
	OpDelete   = "delete"
	OpUpdate   = "update"
	OpReadBack = "read_back"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// List returns every task in storage-native order.
	// Returns an empty (non-nil) slice when there are no tasks.
	List(ctx context.Context) ([]*domain.Task, error)

	// Create inserts a new task in a single statement and sets
	// task.CreatedAt to the timestamp assigned by the storage engine.
	// Returns ErrDuplicate if the ID is already taken.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Delete removes the task with the given ID.
	// Returns ErrTaskNotFound if no row matched.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateCompletion sets isDone on the task and returns the task as read
	// back from storage. The write and the read-back share one transaction:
	// if either phase fails nothing is committed.
	// Returns ErrTaskNotFound if no row matched either phase.
	UpdateCompletion(ctx context.Context, id uuid.UUID, isDone bool) (*domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
