// Package errors defines the structured error taxonomy used across the
// engine: every failure carries a kind, a short message, and structured
// context so sinks can report it without string parsing.
package errors

import "fmt"

// Kind classifies an engine error.
type Kind string

const (
	KindComponent     Kind = "component"  // instance construction/render failure
	KindRender        Kind = "render"     // tree-to-target mutation failure
	KindHookContext   Kind = "hook"       // hook misuse
	KindEventDispatch Kind = "event"      // dispatcher/handler failure
	KindValidation    Kind = "validation" // non-fatal rejected input
	KindProtocol      Kind = "protocol"   // wire codec failure
	KindConfig        Kind = "config"     // configuration failure
)

// Error is a structured engine error.
type Error struct {
	// Code is a unique error identifier (e.g., "E201").
	Code string

	// Kind is the error classification.
	Kind Kind

	// Message is a short description of the error.
	Message string

	// Context carries structured diagnostic values (component name,
	// node id, prop key, ...).
	Context map[string]any

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// With adds a context key/value to the error and returns it.
func (e *Error) With(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any, 4)
	}
	e.Context[key] = value
	return e
}

// Wrap records the underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:    code,
		Kind:    template.Kind,
		Message: template.Message,
	}
}

// Newf creates an Error with a formatted message and no code.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error, preserving it if already structured.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	if le, ok := err.(*Error); ok {
		return le
	}
	return New(code).Wrap(err)
}
