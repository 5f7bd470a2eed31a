// Package result holds the response envelope every public operation returns.
// Expected failures (authorization, validation, conflicts) travel inside the
// envelope instead of as Go errors, so callers branch on Status and Code only.
package result

import (
	"encoding/json"
	"net/http"

	"github.com/philly/member-admin/internal/platform/apperror"
)

// Status is the coarse outcome of an operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// InternalErrorMessage is the only message surfaced for unexpected faults.
const InternalErrorMessage = "internal server error"

// Result is the {status, data, code, message} envelope.
type Result[T any] struct {
	Status  Status `json:"status"`
	Data    *T     `json:"data"`
	Code    int    `json:"code"`
	Message string `json:"message"`

	// Details carries structured error context such as invalid field or
	// role names. Omitted on success.
	Details any `json:"details,omitempty"`

	// Err keeps the originating error for logging and errors.Is checks.
	// It is never serialized.
	Err error `json:"-"`
}

// OK wraps data in a 200 success envelope.
func OK[T any](data T, message string) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: &data, Code: http.StatusOK, Message: message}
}

// Created wraps data in a 201 success envelope.
func Created[T any](data T, message string) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: &data, Code: http.StatusCreated, Message: message}
}

// FromError converts err into an error envelope. AppErrors keep their status
// and caller-safe message. Anything else becomes a generic 500.
func FromError[T any](err error) Result[T] {
	if appErr, ok := apperror.As(err); ok {
		return Result[T]{
			Status:  StatusError,
			Code:    appErr.HTTPStatus,
			Message: appErr.Message,
			Details: appErr.Details,
			Err:     err,
		}
	}
	return Result[T]{Status: StatusError, Code: http.StatusInternalServerError, Message: InternalErrorMessage, Err: err}
}

// IsSuccess reports whether the operation succeeded.
func (r Result[T]) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Value returns the payload or the zero value on error.
func (r Result[T]) Value() T {
	if r.Data == nil {
		var zero T
		return zero
	}
	return *r.Data
}

// Error returns the originating error, nil on success.
func (r Result[T]) Error() error {
	return r.Err
}

// Write encodes r as JSON with r.Code as the HTTP status.
func Write[T any](w http.ResponseWriter, r Result[T]) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Code)
	return json.NewEncoder(w).Encode(r)
}

// Map converts the payload of a successful result with fn. Error results
// pass through with their status, message and details intact.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	out := Result[U]{
		Status:  r.Status,
		Code:    r.Code,
		Message: r.Message,
		Details: r.Details,
		Err:     r.Err,
	}
	if r.Data != nil {
		mapped := fn(*r.Data)
		out.Data = &mapped
	}
	return out
}
