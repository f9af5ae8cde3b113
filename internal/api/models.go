package api

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// CreateTaskRequest defines the payload for POST /api/tasks.
// IsDone is optional and defaults to false.
type CreateTaskRequest struct {
	Description *string `json:"description" validate:"required"`
	IsDone      *bool   `json:"isDone"`
}

// UpdateTaskRequest defines the payload for PATCH /api/tasks/{id}.
type UpdateTaskRequest struct {
	IsDone *bool `json:"isDone" validate:"required"`
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	IsDone      bool      `json:"isDone"`
	CreatedAt   time.Time `json:"createdAt"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Description: task.Description,
		IsDone:      task.IsDone,
		CreatedAt:   task.CreatedAt,
	}
}

// tasksToResponse converts tasks, always returning a non-nil slice so an
// empty list encodes as [].
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	response := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, taskToResponse(task))
	}
	return response
}
