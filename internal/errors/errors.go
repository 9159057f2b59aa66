package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown Code = "unknown"

	// Configuration values
	CodeMalformedValue        Code = "malformed_value"
	CodeUnresolvableReference Code = "unresolvable_reference"
	CodeInvalidFindKey        Code = "invalid_find_key"
	CodeConfigurationError    Code = "configuration_error"

	// Internal misuse of the color engine
	CodePreconditionViolation Code = "precondition_violation"

	// Artifact emission and history
	CodeIOFailed Code = "io_failed"
)

// Error represents a structured error with a machine-readable code plus message.
// Path points at the offending configuration location when one is known.
type Error struct {
	Code    Code
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Path != "" {
		return e.Path + ": " + msg
	}
	return msg
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// At is New with a configuration path attached.
func At(code Code, path, msg string, err error) Error {
	return Error{Code: code, Path: path, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// PathOf returns the configuration path of the first structured error in the chain.
func PathOf(err error) string {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Path
	}
	return ""
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
