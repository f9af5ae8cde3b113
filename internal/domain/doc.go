// Package domain defines the core business entity of the application, the
// Task, together with its validation rules and the validation error type
// shared by the service and API layers.
//
// The domain package has no dependencies on storage or transport concerns.
package domain
