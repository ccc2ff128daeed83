package errors

import "fmt"

// CodeUnset is the code of a Type created without one.
const CodeUnset = -1

// Type is a named classification of errors with an optional default code and
// default message. Types are created through a Registry which enforces the
// uniqueness of their names.
type Type struct {
	name    string
	code    int
	message any
}

// Types of the failures returned by this package. They are not registered
// in any Registry.
var (
	ValidationError = &Type{name: "ValidationError", code: CodeUnset}
	TypeError       = &Type{name: "TypeError", code: CodeUnset}
	ConflictError   = &Type{name: "ConflictError", code: CodeUnset}
	ArgumentError   = &Type{name: "ArgumentError", code: CodeUnset}
	InternalError   = &Type{name: "InternalError", code: CodeUnset}
	PanicError      = &Type{name: "PanicError", code: CodeUnset}
)

func (t *Type) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Code returns the default code, CodeUnset if none.
func (t *Type) Code() int {
	if t == nil {
		return CodeUnset
	}
	return t.code
}

// Message returns the default message, nil if none.
func (t *Type) Message() any {
	if t == nil {
		return nil
	}
	return t.message
}

// Error returns the name, so that a Type can be the target of errors.Is.
func (t *Type) Error() string {
	return t.Name()
}

func (t *Type) String() string {
	return fmt.Sprintf("%s: %p", t.Name(), t)
}

// New creates an Error of this Type. A nil message is replaced by the default
// message of the Type, if any; the resulting Message then holds no value and
// the default message is rendered through the Type only. The code of the Type
// is the default code of the Message.
func (t *Type) New(message any, options ...Option) (*Error, error) {
	if t == nil {
		return nil, fail(ArgumentError, 1, "*errors.Type expected, got nil")
	}
	defaulted := message == nil && t.message != nil
	if defaulted {
		message = t.message
	}
	e, err := build(message, newOptions(options), t, 1)
	if err != nil {
		return nil, err
	}
	if defaulted {
		cleared := *e.message
		cleared.value = nil
		e.message = &cleared
	}
	return e, nil
}

// Errorf is Errorf creating an Error of this Type.
func (t *Type) Errorf(format string, args ...any) *Error {
	return errorf(t, format, args)
}
