package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides the to-do list operations.
type TaskService interface {
	// ListTasks returns every task in storage order. The result is never nil.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// CreateTask validates the description, assigns a new ID and persists
	// the task. isDone defaults to false when nil.
	CreateTask(ctx context.Context, description string, isDone *bool) (*domain.Task, error)

	// DeleteTask removes the task with the given ID.
	// Returns ErrTaskNotFound if it does not exist.
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// SetCompletion sets isDone on the task and returns the task as stored
	// afterwards. Returns ErrTaskNotFound if it does not exist.
	SetCompletion(ctx context.Context, id uuid.UUID, isDone bool) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "task store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("operation", OpListTasks),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError(OpListTasks, "failed to retrieve tasks", err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks",
		slog.String("operation", OpListTasks),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	description string,
	isDone *bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	done := false
	if isDone != nil {
		done = *isDone
	}

	task, err := domain.NewTask(description, done)
	if err != nil {
		log.Warn("rejected invalid task",
			slog.String("operation", OpCreateTask),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		if store.IsDuplicateError(err) {
			// IDs are generated here, so a collision is a server fault.
			log.Error("generated task id already exists",
				slog.String("operation", OpCreateTask),
				slog.String("task_id", task.ID.String()))
			return nil, NewTaskServiceError(OpCreateTask, "task id collision", err)
		}
		log.Error("failed to create task",
			slog.String("operation", OpCreateTask),
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError(OpCreateTask, "failed to save task", err)
	}

	log.Info("task created",
		slog.String("operation", OpCreateTask),
		slog.String("task_id", task.ID.String()),
		slog.Bool("is_done", task.IsDone))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task to delete not found",
				slog.String("operation", OpDeleteTask),
				slog.String("task_id", id.String()))
			return ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("operation", OpDeleteTask),
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return NewTaskServiceError(OpDeleteTask, "failed to delete task", err)
	}

	log.Info("task deleted",
		slog.String("operation", OpDeleteTask),
		slog.String("task_id", id.String()))
	return nil
}

// SetCompletion implements TaskService.SetCompletion
// The store performs the update and the read-back in one transaction, so a
// failure here means no change was committed.
func (s *taskServiceImpl) SetCompletion(
	ctx context.Context,
	id uuid.UUID,
	isDone bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.UpdateCompletion(ctx, id, isDone)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task to update not found",
				slog.String("operation", OpSetCompletion),
				slog.String("task_id", id.String()))
			return nil, ErrTaskNotFound
		}

		attrs := []any{
			slog.String("operation", OpSetCompletion),
			slog.String("task_id", id.String()),
			slog.Bool("is_done", isDone),
			slog.String("error", err.Error()),
		}
		var storeErr *store.StoreError
		if errors.As(err, &storeErr) {
			attrs = append(attrs, slog.String("phase", storeErr.Operation))
		}
		log.Error("failed to set task completion", attrs...)
		return nil, NewTaskServiceError(OpSetCompletion, "failed to update task", err)
	}

	log.Info("task completion set",
		slog.String("operation", OpSetCompletion),
		slog.String("task_id", id.String()),
		slog.Bool("is_done", task.IsDone))
	return task, nil
}
