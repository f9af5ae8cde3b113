package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const entityTask = "task"

const (
	listTasksQuery = `
		SELECT id, description, "isDone", "createdAt"
		FROM tasks
	`

	getTaskQuery = `
		SELECT id, description, "isDone", "createdAt"
		FROM tasks
		WHERE id = $1
	`

	insertTaskQuery = `
		INSERT INTO tasks (id, description, "isDone")
		VALUES ($1, $2, $3)
		RETURNING "createdAt"
	`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = $1`

	updateTaskCompletionQuery = `UPDATE tasks SET "isDone" = $1 WHERE id = $2`
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return s.bind(tx)
}

// bind returns a copy of the store that runs its statements through q.
func (s *PostgresTaskStore) bind(q store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{
		db:     q,
		logger: s.logger,
	}
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listTasksQuery)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError(entityTask, store.OpList, "failed to query tasks", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError(entityTask, store.OpList, "failed to scan task", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError(entityTask, store.OpList, "failed to iterate tasks", MapError(err))
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
// The storage engine assigns createdAt; it is read back through RETURNING.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	err := s.db.QueryRowContext(ctx, insertTaskQuery, task.ID, task.Description, task.IsDone).
		Scan(&task.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate task id on create", slog.String("task_id", task.ID.String()))
			return store.ErrDuplicate
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError(entityTask, store.OpCreate, "failed to insert task", MapError(err))
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.Bool("is_done", task.IsDone))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := getTask(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, err
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError(entityTask, store.OpGet, "failed to get task", err)
	}

	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError(entityTask, store.OpDelete, "failed to delete task", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
			return err
		}
		return store.NewStoreError(entityTask, store.OpDelete, "failed to confirm delete", err)
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// UpdateCompletion implements store.TaskStore.UpdateCompletion
// The UPDATE and the read-back SELECT run in one transaction. A failed
// read-back rolls the UPDATE back, so an error never hides a committed change.
func (s *PostgresTaskStore) UpdateCompletion(
	ctx context.Context,
	id uuid.UUID,
	isDone bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.WithinTx(ctx, s.db, func(ctx context.Context, q store.DBTX) error {
		result, err := q.ExecContext(ctx, updateTaskCompletionQuery, isDone, id)
		if err != nil {
			return store.NewStoreError(entityTask, store.OpUpdate, "failed to update task", MapError(err))
		}

		if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return err
			}
			return store.NewStoreError(entityTask, store.OpUpdate, "failed to confirm update", err)
		}

		task, err := s.bind(q).GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return err
			}
			return store.NewStoreError(entityTask, store.OpReadBack, "failed to read back updated task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for completion update", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task completion",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.Bool("is_done", isDone))
		return nil, err
	}

	log.Info("task completion updated",
		slog.String("task_id", id.String()),
		slog.Bool("is_done", updated.IsDone))
	return updated, nil
}

// getTask reads one task through q. A missing row is reported as store.ErrTaskNotFound.
func getTask(ctx context.Context, q store.DBTX, id uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(q.QueryRowContext(ctx, getTaskQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}
	return task, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(&task.ID, &task.Description, &task.IsDone, &task.CreatedAt); err != nil {
		return nil, err
	}
	return &task, nil
}
