package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies recoverable failures inside an agent run. Every kind is
// non-fatal: the engine records it and keeps driving toward a final answer.
type Kind string

const (
	// KindTransport marks reasoning-oracle transport failures (network, auth).
	KindTransport Kind = "transport"
	// KindValidation marks tool-name or parameter schema validation failures.
	KindValidation Kind = "validation"
	// KindTool marks failures raised by a tool during execution.
	KindTool Kind = "tool"
	// KindParse marks unparseable oracle output at a structured call site.
	KindParse Kind = "parse"
	// KindInternal is the fallback for everything else.
	KindInternal Kind = "internal"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
)

// Error wraps an underlying error with a kind, an HTTP-style status and a
// safe message.
type Error struct {
	Err     error
	Kind    Kind
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Kind:    KindInternal,
		Status:  status,
		Message: message,
	}
}

// NewKind creates a classified Error with a default status.
func NewKind(kind Kind, err error, message string) *Error {
	return &Error{
		Err:     err,
		Kind:    kind,
		Status:  http.StatusInternalServerError,
		Message: message,
	}
}

// KindOf reports the classification of err, or KindInternal when err does
// not carry one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}
