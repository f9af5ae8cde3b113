package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListTasksFn     func(ctx context.Context) ([]*domain.Task, error)
	CreateTaskFn    func(ctx context.Context, description string, isDone *bool) (*domain.Task, error)
	DeleteTaskFn    func(ctx context.Context, id uuid.UUID) error
	SetCompletionFn func(ctx context.Context, id uuid.UUID, isDone bool) (*domain.Task, error)

	// Default response values
	Tasks []*domain.Task
	Task  *domain.Task
	Err   error

	// Call tracking for verification
	mu    sync.Mutex
	Calls []string
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
}

// CallCount returns how many times the named method was called.
func (m *MockTaskService) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, call := range m.Calls {
		if call == name {
			count++
		}
	}
	return count
}

// ListTasks implements the service.TaskService interface
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	m.record("ListTasks")
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.Err
}

// CreateTask implements the service.TaskService interface
func (m *MockTaskService) CreateTask(ctx context.Context, description string, isDone *bool) (*domain.Task, error) {
	m.record("CreateTask")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, description, isDone)
	}
	return m.Task, m.Err
}

// DeleteTask implements the service.TaskService interface
func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	m.record("DeleteTask")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Err
}

// SetCompletion implements the service.TaskService interface
func (m *MockTaskService) SetCompletion(ctx context.Context, id uuid.UUID, isDone bool) (*domain.Task, error) {
	m.record("SetCompletion")
	if m.SetCompletionFn != nil {
		return m.SetCompletionFn(ctx, id, isDone)
	}
	return m.Task, m.Err
}
