// Package mocks provides centralized mock implementations for testing.
//
// MockTaskStore is a working in-memory store.TaskStore: with no function
// fields set it behaves like a real backend (insertion order, not-found
// sentinels, createdAt assigned on insert). Set a function field to
// override a single method, for example to inject a storage failure.
//
// MockTaskService implements service.TaskService with function fields and
// call tracking, for handler tests.
//
//	import "github.com/phrazzld/tasks-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    taskStore := mocks.NewMockTaskStore()
//	    taskStore.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
//	        return errors.New("connection refused")
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
