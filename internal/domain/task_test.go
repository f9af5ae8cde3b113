package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	task, err := NewTask("  Buy milk  ", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Description != "  Buy milk  " {
		t.Errorf("Expected description %q kept as given, got %q", "  Buy milk  ", task.Description)
	}

	if task.IsDone {
		t.Error("Expected IsDone to be false")
	}

	if !task.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be left for the store to assign")
	}
}

func TestNewTask_IsDone(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Walk the dog", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !task.IsDone {
		t.Error("Expected IsDone to be true")
	}
}

func TestNewTask_UniqueIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 100; i++ {
		task, err := NewTask("task", false)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("Duplicate ID generated: %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestNewTask_BlankDescription(t *testing.T) {
	t.Parallel()

	for _, description := range []string{"", " ", "\t\n", "   \r\n  "} {
		task, err := NewTask(description, false)
		if err == nil {
			t.Errorf("Expected error for description %q, got task %+v", description, task)
			continue
		}

		if !errors.Is(err, ErrEmptyDescription) {
			t.Errorf("Expected ErrEmptyDescription for %q, got %v", description, err)
		}

		if !errors.Is(err, ErrValidation) {
			t.Errorf("Expected error for %q to match ErrValidation, got %v", description, err)
		}

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("Expected *ValidationError, got %T", err)
		}
		if validationErr.Field != "description" {
			t.Errorf("Expected field %q, got %q", "description", validationErr.Field)
		}
	}
}

func TestTask_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{
			name: "valid",
			task: Task{ID: uuid.New(), Description: "Buy milk"},
		},
		{
			name:    "nil id",
			task:    Task{Description: "Buy milk"},
			wantErr: ErrInvalidID,
		},
		{
			name:    "blank description",
			task:    Task{ID: uuid.New(), Description: "  "},
			wantErr: ErrEmptyDescription,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.task.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("isDone", "must be a boolean", nil)

	if got, want := err.Error(), "validation failed: isDone must be a boolean"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ValidationError without a wrapped error to match ErrValidation")
	}
}
