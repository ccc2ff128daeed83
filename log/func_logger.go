package log

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-error/errors"
)

// Func describes a function value by the place it is defined at.
func Func(v any) fmt.Stringer {
	return funcValue{v: v}
}

// Funcs describes function values as an array of definition sites.
func Funcs[S ~[]E, E any](v S) zerolog.LogArrayMarshaler {
	return funcValues[S, E]{v: v}
}

type funcValue struct {
	v any
}

func (f funcValue) frame() (errors.StackFrame, bool) {
	if f.v == nil {
		return errors.StackFrame{}, false
	}
	v := reflect.ValueOf(f.v)
	if v.Kind() != reflect.Func || v.IsNil() {
		return errors.StackFrame{}, false
	}
	function := runtime.FuncForPC(v.Pointer())
	if function == nil {
		return errors.StackFrame{}, false
	}
	file, line := function.FileLine(function.Entry())
	return errors.StackFrame{Function: function.Name(), File: file, Line: line}, true
}

func (f funcValue) String() string {
	frame, ok := f.frame()
	if !ok {
		if f.v == nil {
			return "<nil>"
		}
		return "<unknown>"
	}
	return fmt.Sprintf("%s() at %s:%d", frame.Function, frame.File, frame.Line)
}

func (f funcValue) MarshalZerologObject(event *zerolog.Event) {
	if frame, ok := f.frame(); ok {
		event.Str("function", frame.Function).Str("file", frame.File).Int("line", frame.Line)
	}
}

type funcValues[S ~[]E, E any] struct {
	v S
}

func (f funcValues[S, E]) MarshalZerologArray(array *zerolog.Array) {
	for _, v := range f.v {
		array.Object(funcValue{v: v})
	}
}
