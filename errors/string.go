package errors

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Stringifier is implemented by message values that render themselves. The
// result must be a string.
type Stringifier interface {
	Stringify() any
}

// ToString renders the Error and every Error it wraps, one per line, the
// outermost first. Each Error is rendered as
//
//	<where>[<type name>:<type code>][<op>] <message>
//	<traceback>
//
// where the message is the default message of the Type followed by the own
// message in parentheses when the Type has a default message. It only fails
// when a Stringifier returns something other than a string, or when the
// chain is longer than the configured maximum.
func (e *Error) ToString() (string, error) {
	text, err := e.toString()
	if err != nil {
		return "", err
	}
	return text, nil
}

func (e *Error) toString() (string, *Error) {
	if e == nil {
		return "<nil>", nil
	}
	var builder strings.Builder
	limit := MaxChainDepth()
	depth := 0
	for current := e; current != nil; current = current.wrap {
		if depth == limit {
			return "", fail(InternalError, 2, "wrap chain longer than %d errors", limit)
		}
		if depth > 0 {
			builder.WriteByte('\n')
		}
		if err := current.render(&builder, true); err != nil {
			return "", err
		}
		depth++
	}
	return builder.String(), nil
}

// Error renders the Error like ToString but never fails: a failing
// Stringifier is rendered like any other reference value, and a chain longer
// than the configured maximum is cut.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var builder strings.Builder
	limit := MaxChainDepth()
	depth := 0
	for current := e; current != nil; current = current.wrap {
		if depth > 0 {
			builder.WriteByte('\n')
		}
		if depth == limit {
			builder.WriteString("...")
			break
		}
		_ = current.render(&builder, false)
		depth++
	}
	return builder.String()
}

func (e *Error) render(builder *strings.Builder, strict bool) *Error {
	builder.WriteString(e.where)
	t, op := e.typ, e.message.Op()
	if t != nil {
		builder.WriteByte('[')
		builder.WriteString(t.name)
		builder.WriteByte(':')
		builder.WriteString(strconv.Itoa(t.code))
		builder.WriteByte(']')
		if op != "" {
			builder.WriteByte('[')
			builder.WriteString(op)
			builder.WriteByte(']')
		}
	} else if op != "" {
		builder.WriteString("[op:")
		builder.WriteString(op)
		builder.WriteByte(']')
	}
	if t != nil || op != "" {
		builder.WriteByte(' ')
	}
	if t != nil && t.message != nil {
		text, err := display(t.message, strict)
		if err != nil {
			return err
		}
		builder.WriteString(text)
		if e.message.HasValue() {
			if text, err = display(e.message.value, strict); err != nil {
				return err
			}
			builder.WriteString(" (")
			builder.WriteString(text)
			builder.WriteByte(')')
		}
	} else {
		text, err := display(e.message.Value(), strict)
		if err != nil {
			return err
		}
		builder.WriteString(text)
	}
	if len(e.traceback) > 0 {
		builder.WriteByte('\n')
		builder.WriteString(e.traceback.String())
	}
	return nil
}

// display converts a message value to text. When strict, a Stringifier
// returning a non-string value fails with a TypeError, otherwise the value is
// rendered as a reference.
func display(value any, strict bool) (string, *Error) {
	switch v := value.(type) {
	case nil:
		return "nil", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case Stringifier:
		if isNilPointer(v) {
			return nilReference(v), nil
		}
		result := v.Stringify()
		if text, ok := result.(string); ok {
			return text, nil
		}
		if strict {
			return "", fail(TypeError, 2, "'Stringify' must return a string, got %T", result)
		}
		return reference(v), nil
	case *Error:
		if strict {
			return v.toString()
		}
		return v.Error(), nil
	case fmt.Stringer:
		if isNilPointer(v) {
			return nilReference(v), nil
		}
		return v.String(), nil
	case error:
		if isNilPointer(v) {
			return nilReference(v), nil
		}
		return v.Error(), nil
	}
	return reference(value), nil
}

// isNilPointer reports whether value is a typed nil pointer, whose methods
// may dereference their receiver.
func isNilPointer(value any) bool {
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func nilReference(value any) string {
	return fmt.Sprintf("%T: nil", value)
}

// reference renders a value as "<type>: <address>" for reference kinds, or
// "<type>: <value>" for the others.
func reference(value any) string {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%T: %#x", value, v.Pointer())
	}
	return fmt.Sprintf("%T: %v", value, value)
}

// Format implements fmt.Formatter: %s and %v print Error(), %q prints it
// quoted and %+v prints every field of every Error of the chain.
func (e *Error) Format(state fmt.State, verb rune) {
	switch verb {
	case 'v':
		if state.Flag('+') {
			e.formatVerbose(state)
			return
		}
		_, _ = fmt.Fprint(state, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(state, "%q", e.Error())
	default:
		_, _ = fmt.Fprint(state, e.Error())
	}
}

func (e *Error) formatVerbose(state fmt.State) {
	if e == nil {
		_, _ = fmt.Fprint(state, "<nil>")
		return
	}
	limit := MaxChainDepth()
	depth := 0
	for current := e; current != nil && depth < limit; current = current.wrap {
		if depth > 0 {
			_, _ = fmt.Fprint(state, "\ncause: ")
		}
		text, _ := display(current.message.Value(), false)
		_, _ = fmt.Fprintf(state, "msg=%q", text)
		if t := current.typ; t != nil {
			_, _ = fmt.Fprintf(state, " type=%s code=%d", t.name, t.code)
		}
		if op := current.message.Op(); op != "" {
			_, _ = fmt.Fprintf(state, " op=%s", op)
		}
		if code, exists := current.message.Code(); exists {
			_, _ = fmt.Fprintf(state, " message_code=%d", code)
		}
		_, _ = fmt.Fprintf(state, " where=%q", current.where)
		for _, frame := range current.traceback {
			_, _ = fmt.Fprintf(state, "\n  %s %s:%d", frame.Function, frame.File, frame.Line)
		}
		depth++
	}
}
