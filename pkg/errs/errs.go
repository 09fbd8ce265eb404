package errs

import (
	"fmt"
)

// Error represents a json-encoded API error.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}

// ValidationError is returned when an input coverage record is malformed or
// inconsistent. It is fatal: a run must abort before any publish attempt.
type ValidationError struct {
	Path   string
	Remark string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid coverage input: %s", e.Remark)
	}
	return fmt.Sprintf("invalid coverage record for %s: %s", e.Path, e.Remark)
}

// ErrInvalidRecord returns a ValidationError for the given file path.
func ErrInvalidRecord(path, remark string) error {
	return &ValidationError{Path: path, Remark: remark}
}

// ErrInvalidPayload returns a ValidationError when the run payload is invalid.
func ErrInvalidPayload(remark string) error {
	return &ValidationError{Remark: remark}
}

// PublishError is returned when the annotation store is unreachable or keeps
// rejecting after the bounded retries. It carries the annotation identity and
// the terminal cause so the caller can decide whether to fail the build.
type PublishError struct {
	Identity string
	Cause    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish annotation %s: %v", e.Identity, e.Cause)
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}

// StatusFailed is thrown when the coverage run failed the threshold policy.
type StatusFailed struct {
	Remark string
}

func (e *StatusFailed) Error() string {
	return e.Remark
}

var (
	// ErrNotFound is returned when a blob or annotation is not found.
	ErrNotFound = New("not found")
	// ErrApiStatus is returned when the api status is not 200.
	ErrApiStatus = New("non OK status")
	// ErrInvalidLoggerInstance is returned when logger instance is not supported.
	ErrInvalidLoggerInstance = New("Invalid logger instance")
	// ErrStaleAnnotation is returned when a compare-and-swap update lost the
	// race against a concurrent run on the same pull request.
	ErrStaleAnnotation = New("annotation modified concurrently")
	// GenericErrRemark returns a generic error message for user facing errors.
	GenericErrRemark = New("Unexpected error")
)
