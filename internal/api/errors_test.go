package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusInternalServerError},
		{"service not found", service.ErrTaskNotFound, http.StatusNotFound},
		{"store not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", service.ErrTaskNotFound), http.StatusNotFound},
		{"validation", domain.NewValidationError("description", "is required", domain.ErrEmptyDescription), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"duplicate id", store.ErrDuplicate, http.StatusInternalServerError},
		{"service error", &service.TaskServiceError{Operation: "x", Err: errors.New("boom")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"not found", service.ErrTaskNotFound, "Task not found"},
		{"empty description", domain.NewValidationError("description", "is required", domain.ErrEmptyDescription), "Invalid description: required field"},
		{"other field", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), "Invalid id: has invalid format"},
		{"bare validation", domain.ErrValidation, "Validation error"},
		{"internal detail hidden", errors.New("pq: password authentication failed for user admin"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	assert.Equal(t, "Invalid isDone: required field", SanitizeValidationError(shared.ValidateRequest(&UpdateTaskRequest{})))
	assert.Equal(t, "Invalid description: required field", SanitizeValidationError(shared.ValidateRequest(&CreateTaskRequest{})))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}

func TestSanitizeDecodeError(t *testing.T) {
	var req UpdateTaskRequest
	typeErr := json.Unmarshal([]byte(`{"isDone":"no"}`), &req)

	assert.Equal(t, "Invalid isDone: must be a boolean", SanitizeDecodeError(typeErr))
	assert.Equal(t, "Request body is required", SanitizeDecodeError(shared.ErrEmptyBody))
	assert.Equal(t, "Invalid request format", SanitizeDecodeError(errors.New("unexpected EOF")))
}
