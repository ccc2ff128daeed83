// Package errors provides structured error values: an Error carries a
// Message, an optional Type classifying it, an optional wrapped Error, the
// description of the call site that created it and an optional traceback.
//
// Types are named and registered in a Registry so that the same
// classification can be looked up by name. Errors are immutable once created
// and safe to share between goroutines.
package errors

import "fmt"

// MaxLevel is the highest stack level accepted by WithSkip.
const MaxLevel = 255

// Error is an immutable error value carrying a Message and the call site that
// created it.
type Error struct {
	message   *Message
	typ       *Type
	wrap      *Error
	where     string
	traceback StackFrames
}

// New creates an Error. A *Message is used as is, any other non-nil value is
// wrapped into a new Message built with the WithOp and WithCode options.
//
// New fails with a ValidationError for a nil message, a level out of range or
// WithOp and WithCode given with an *Message, and with a TypeError when the
// wrapped error is not an *Error.
func New(message any, options ...Option) (*Error, error) {
	e, err := build(message, newOptions(options), nil, 1)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// build constructs an Error; depth is the number of frames between build and
// the exported entry point called by the user.
func build(message any, o options, t *Type, depth int) (*Error, *Error) {
	if o.skip < 1 || o.skip > MaxLevel {
		return nil, fail(ValidationError, depth+1, "level between 1-%d expected, got %d", MaxLevel, o.skip)
	}
	var wrap *Error
	if o.wrap != nil {
		var ok bool
		if wrap, ok = o.wrap.(*Error); !ok {
			return nil, fail(TypeError, depth+1, "*errors.Error expected as wrapped error, got %T", o.wrap)
		}
	}
	m, ok := message.(*Message)
	if !ok {
		if message == nil {
			return nil, fail(ValidationError, depth+1, "message expected, got nil")
		}
		m = newMessage(message, o, t)
	} else if m == nil {
		return nil, fail(ValidationError, depth+1, "message expected, got nil *errors.Message")
	} else if o.op != "" || o.hasCode {
		return nil, fail(ValidationError, depth+1, "WithOp and WithCode do not apply to an *errors.Message")
	}
	e := &Error{
		message: m,
		typ:     t,
		wrap:    wrap,
		where:   describe(depth + o.skip),
	}
	if o.traceback || Debug() {
		e.traceback = StackTrace(depth + o.skip)
	}
	return e, nil
}

// fail creates a failure of the library itself, described at the same stack
// level as describe(skip) would be from the caller of fail.
func fail(t *Type, skip int, format string, args ...any) *Error {
	e := &Error{
		message: &Message{value: fmt.Sprintf(format, args...), code: t.code, hasCode: t.code != CodeUnset},
		typ:     t,
		where:   describe(skip + 1),
	}
	if Debug() {
		e.traceback = StackTrace(skip + 1)
	}
	return e
}

func (e *Error) Message() *Message {
	if e == nil {
		return nil
	}
	return e.message
}

// Type returns the classification of the Error, nil if none.
func (e *Error) Type() *Type {
	if e == nil {
		return nil
	}
	return e.typ
}

// Wrapped returns the cause of the Error, nil if none.
func (e *Error) Wrapped() *Error {
	if e == nil {
		return nil
	}
	return e.wrap
}

// Where returns the description of the call site that created the Error.
func (e *Error) Where() string {
	if e == nil {
		return ""
	}
	return e.where
}

// Traceback returns the captured stack, nil unless requested or in debug mode.
func (e *Error) Traceback() StackFrames {
	if e == nil {
		return nil
	}
	return e.traceback
}

// Unwrap returns the wrapped Error, without walking the chain.
func (e *Error) Unwrap() error {
	if e == nil || e.wrap == nil {
		return nil
	}
	return e.wrap
}

// Is reports whether target is this Error or its Type. The standard library
// errors.Is calls it for every Error of the chain.
func (e *Error) Is(target error) bool {
	switch target := target.(type) {
	case *Error:
		return e == target
	case *Type:
		return e != nil && e.typ != nil && e.typ == target
	}
	return false
}
