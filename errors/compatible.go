package errors

import "errors"

// ToError returns v if it is an *Error, otherwise a new Error whose message
// value is v. A nil value returns nil.
func ToError(v any) *Error {
	switch v := v.(type) {
	case nil:
		return nil
	case *Error:
		if v != nil {
			return v
		}
		return nil
	}
	e, err := build(v, options{skip: 1}, nil, 1)
	if err != nil {
		return err
	}
	return e
}

// Cause returns the Message of an *Error, or v itself if it is a *Message,
// and whether the returned value is a Message.
func Cause(v any) (any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case *Error:
		if v == nil {
			return nil, false
		}
		return v.message, true
	case *Message:
		return v, v != nil
	}
	return v, false
}

// TypeOf returns the Type of an *Error, v itself if it is a *Type, nil
// otherwise.
func TypeOf(v any) *Type {
	switch v := v.(type) {
	case *Error:
		return v.Type()
	case *Type:
		return v
	}
	return nil
}

// Match is Error.Match for any error: nil when err is not an *Error.
func Match(err error, target any) (*Error, error) {
	e, ok := err.(*Error)
	if !ok {
		return nil, nil
	}
	found, failure := e.match(target, 1)
	if failure != nil {
		return nil, failure
	}
	return found, nil
}

// Is reports whether any error in err's chain matches target, as the
// standard library errors.Is does.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the error wrapped by err, as the standard library
// errors.Unwrap does.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
