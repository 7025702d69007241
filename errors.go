package nvmelite

import (
	"errors"
	"fmt"
)

// Error represents a structured, boundary-layer failure: a bad CLI
// argument, an unreadable seed or config file, or a trace sink write
// failure. Semantic errors from the model itself (out-of-range lba+len)
// are never wrapped in Error -- they are data, encoded into the trace as a
// COMPLETE line with status=ERR.
type Error struct {
	Op    string    // operation that failed, e.g. "run-one", "load-seed"
	RunID string    // run identity, if known ("" if not applicable)
	Code  ErrorCode // high-level error category
	Msg   string    // human-readable message
	Inner error     // wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.RunID != "" {
		parts = append(parts, fmt.Sprintf("run_id=%s", e.RunID))
	}

	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if len(parts) > 0 {
		return fmt.Sprintf("nvmelite: %s (%s)", msg, parts[0])
	}
	return fmt.Sprintf("nvmelite: %s", msg)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is provides errors.Is support based on error category.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// ErrorCode is a high-level error category.
type ErrorCode string

const (
	ErrCodeInputInvalid     ErrorCode = "input invalid"
	ErrCodeSeedUnreadable   ErrorCode = "seed unreadable"
	ErrCodeConfigUnreadable ErrorCode = "config unreadable"
	ErrCodeSinkWrite        ErrorCode = "trace sink write failed"
)

// NewError creates a new structured error.
func NewError(op string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// NewRunError creates a new structured error tied to a specific run.
func NewRunError(op, runID string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, RunID: runID, Code: code, Msg: msg}
}

// WrapError wraps an existing error with nvmelite context.
func WrapError(op string, code ErrorCode, inner error) *Error {
	if inner == nil {
		return nil
	}
	if e, ok := inner.(*Error); ok {
		return &Error{Op: op, RunID: e.RunID, Code: e.Code, Msg: e.Msg, Inner: e.Inner}
	}
	return &Error{Op: op, Code: code, Msg: inner.Error(), Inner: inner}
}

// IsCode checks whether err (or something it wraps) carries the given
// error code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
