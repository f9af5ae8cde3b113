// Package service contains the application use cases for tasks. It sits
// between the HTTP delivery layer (internal/api) and the repository
// interface (internal/store), and never depends on a concrete storage engine.
//
// Error handling:
//   - Validation failures are returned untouched as *domain.ValidationError,
//     so callers can check them with errors.Is(err, domain.ErrValidation).
//   - A missing task is reported with the ErrTaskNotFound sentinel.
//   - Every other failure is wrapped in a *TaskServiceError carrying the
//     name of the operation that failed.
package service
