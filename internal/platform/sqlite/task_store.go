package sqlite

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
	listTasksQuery = `SELECT id, description, "isDone", "createdAt" FROM tasks ORDER BY rowid`

	getTaskQuery = `SELECT id, description, "isDone", "createdAt" FROM tasks WHERE id = ?`

	insertTaskQuery = `INSERT INTO tasks (id, description, "isDone") VALUES (?, ?, ?) RETURNING "createdAt"`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`

	updateTaskCompletionQuery = `UPDATE tasks SET "isDone" = ? WHERE id = ?`
)

// TaskStore implements store.TaskStore on SQLite.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a SQLite-backed task store over db, which is usually
// the *sql.DB returned by Open. If logger is nil, slog.Default is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return s.bind(tx)
}

func (s *TaskStore) bind(q store.DBTX) *TaskStore {
	return &TaskStore{db: q, logger: s.logger}
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listTasksQuery)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError(entityTask, store.OpList, "failed to query tasks", mapError(err))
	}
	defer func() { _ = rows.Close() }()

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
		return nil, store.NewStoreError(entityTask, store.OpList, "failed to iterate tasks", mapError(err))
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	var createdAt timestamp
	err := s.db.QueryRowContext(ctx, insertTaskQuery, task.ID, task.Description, task.IsDone).
		Scan(&createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate task id on create", slog.String("task_id", task.ID.String()))
			return store.ErrDuplicate
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError(entityTask, store.OpCreate, "failed to insert task", mapError(err))
	}
	task.CreatedAt = createdAt.Time

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.Bool("is_done", task.IsDone))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := getTask(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError(entityTask, store.OpGet, "failed to get task", err)
	}
	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError(entityTask, store.OpDelete, "failed to delete task", mapError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError(entityTask, store.OpDelete, "failed to confirm delete", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// UpdateCompletion implements store.TaskStore.UpdateCompletion
func (s *TaskStore) UpdateCompletion(ctx context.Context, id uuid.UUID, isDone bool) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.WithinTx(ctx, s.db, func(ctx context.Context, q store.DBTX) error {
		result, err := q.ExecContext(ctx, updateTaskCompletionQuery, isDone, id)
		if err != nil {
			return store.NewStoreError(entityTask, store.OpUpdate, "failed to update task", mapError(err))
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return store.NewStoreError(entityTask, store.OpUpdate, "failed to confirm update", err)
		}
		if affected == 0 {
			return store.ErrTaskNotFound
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
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task completion",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	log.Info("task completion updated",
		slog.String("task_id", id.String()),
		slog.Bool("is_done", updated.IsDone))
	return updated, nil
}

func getTask(ctx context.Context, q store.DBTX, id uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(q.QueryRowContext(ctx, getTaskQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, mapError(err)
	}
	return task, nil
}

func scanTask(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var (
		task      domain.Task
		createdAt timestamp
	)
	if err := row.Scan(&task.ID, &task.Description, &task.IsDone, &createdAt); err != nil {
		return nil, err
	}
	task.CreatedAt = createdAt.Time
	return &task, nil
}
