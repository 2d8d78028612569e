package scheduling

import (
	"errors"
	"fmt"
)

// Machine-readable error codes surfaced at the API boundary.
const (
	CodeInvalidInput     = "invalid_input"
	CodeNotFound         = "not_found"
	CodeScheduleConflict = "schedule_conflict"
	CodeStoreUnavailable = "store_unavailable"
)

// Error is a scheduling failure with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidInput builds an invalid_input error. Inputs failing this check are
// rejected before any store query and must never be retried as-is.
func NewInvalidInput(format string, args ...interface{}) error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound builds a not_found error for an unknown entity reference.
func NewNotFound(format string, args ...interface{}) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewScheduleConflict builds a schedule_conflict error. This is a definitive
// rejection; the caller is expected to re-query slots and pick another instant.
func NewScheduleConflict(format string, args ...interface{}) error {
	return &Error{Code: CodeScheduleConflict, Message: fmt.Sprintf(format, args...)}
}

// NewStoreUnavailable wraps a persistence failure. Only the read path is safe
// to blindly retry; retrying a create requires an idempotency key.
func NewStoreUnavailable(err error, format string, args ...interface{}) error {
	return &Error{Code: CodeStoreUnavailable, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the scheduling error code, or "" for unclassified errors.
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
