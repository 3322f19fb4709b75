package core

import "github.com/pkg/errors"

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries per-field failures for API responses. A bare
// message (no fields) is allowed for whole-request rejections.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals that the server's state is unknown and a restart is the
// only safe recovery. Checked by the HTTP error handler via IsShutdown.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
