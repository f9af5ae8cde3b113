package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do item. Description is fixed at creation; IsDone is
// the only field that changes over the task's lifetime.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	IsDone      bool      `json:"isDone"`
	// CreatedAt is assigned by the storage engine on insert.
	CreatedAt time.Time `json:"createdAt"`
}

// NewTask creates a new Task with a freshly generated ID.
// The description is kept exactly as given; only its trimmed form must be
// non-empty. Returns a *ValidationError if the description is blank.
func NewTask(description string, isDone bool) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Description: description,
		IsDone:      isDone,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}

	if strings.TrimSpace(t.Description) == "" {
		return NewValidationError("description", "is required", ErrEmptyDescription)
	}

	return nil
}
