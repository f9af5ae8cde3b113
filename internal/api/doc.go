// Package api handles incoming HTTP requests for the task endpoints: request
// decoding and validation, calls into the task service, and response
// formatting. Error-to-status mapping lives in errors.go so every handler
// answers the same error with the same status and message.
package api
