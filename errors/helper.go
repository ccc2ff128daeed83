package errors

import "reflect"

type targetKind uint8

const (
	targetError targetKind = iota
	targetType
	targetMessage
	targetString
	targetValue
)

// Match walks the chain from this Error to the innermost wrapped Error and
// returns the first one matching target:
//
//   - an *Error matches itself;
//   - a *Type matches Errors of that Type;
//   - a *Message matches Errors holding that Message;
//   - a string matches Errors whose message value is an equal string;
//   - any other reference or composite value matches Errors whose message
//     value is that same value.
//
// A nil target, or no match, returns nil without error. Booleans and numbers
// are not valid targets and fail with an ArgumentError.
func (e *Error) Match(target any) (*Error, error) {
	found, err := e.match(target, 1)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (e *Error) match(target any, skip int) (*Error, *Error) {
	if e == nil || target == nil {
		return nil, nil
	}
	kind, err := classifyTarget(target, skip+1)
	if err != nil {
		return nil, err
	}
	limit := MaxChainDepth()
	depth := 0
	for current := e; current != nil; current = current.wrap {
		if depth == limit {
			return nil, fail(InternalError, skip+1, "wrap chain longer than %d errors", limit)
		}
		if current.matches(kind, target) {
			return current, nil
		}
		depth++
	}
	return nil, nil
}

func classifyTarget(target any, skip int) (targetKind, *Error) {
	switch target.(type) {
	case *Error:
		return targetError, nil
	case *Type:
		return targetType, nil
	case *Message:
		return targetMessage, nil
	case string:
		return targetString, nil
	}
	switch reflect.TypeOf(target).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return 0, fail(ArgumentError, skip+1,
			"string, *errors.Type, *errors.Message, *errors.Error or reference value expected, got %T", target)
	}
	return targetValue, nil
}

func (e *Error) matches(kind targetKind, target any) bool {
	switch kind {
	case targetError:
		return e == target.(*Error)
	case targetType:
		return e.typ != nil && e.typ == target.(*Type)
	case targetMessage:
		return e.message == target.(*Message)
	case targetString:
		text, ok := e.message.Value().(string)
		return ok && text == target.(string)
	default:
		return sameValue(e.message.Value(), target)
	}
}

// sameValue compares two values without panicking on uncomparable ones:
// maps, slices and funcs are compared by address, other uncomparable values
// never match.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return false
}
