// Package check validates function arguments. Every function returns nil for
// a valid argument, or an *errors.Error of type errors.ArgumentError:
//
//	<where>[ArgumentError:-1] bad argument #<n> to '<function>' (<expected> expected, got <actual>)
//
// described at the function whose argument is checked, with a traceback
// unless Traceback(false) is given.
package check

import (
	"math"
	"os"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/thanhminhmr/go-error/errors"
	"github.com/thanhminhmr/go-error/internal"
)

type Option func(*config)

type config struct {
	arg       int
	level     int
	traceback bool
}

// Arg sets the position of the argument in the checked function, 1 by default.
func Arg(index int) Option { return func(c *config) { c.arg = index } }

// Level sets the stack level of the checked function, 1 by default meaning
// the caller of the check.
func Level(level int) Option { return func(c *config) { c.level = level } }

// Traceback attaches a traceback to the failure, enabled by default.
func Traceback(enabled bool) Option { return func(c *config) { c.traceback = enabled } }

func newConfig(options []Option) config {
	c := config{arg: 1, level: 1, traceback: true}
	for _, option := range options {
		if option != nil {
			option(&c)
		}
	}
	c.level = min(max(c.level, 1), errors.MaxLevel-2)
	return c
}

// argumentError must be called directly by the exported check function.
func argumentError(c config, expected string, actual string) error {
	var builder strings.Builder
	builder.WriteString("bad argument #")
	builder.WriteString(strconv.Itoa(c.arg))
	if name, ok := functionName(c.level + 2); ok {
		builder.WriteString(" to '")
		builder.WriteString(name)
		builder.WriteByte('\'')
	}
	builder.WriteString(" (")
	builder.WriteString(expected)
	builder.WriteString(" expected, got ")
	builder.WriteString(actual)
	builder.WriteByte(')')
	return errors.Must(errors.ArgumentError.New(builder.String(),
		errors.WithSkip(c.level+2),
		errors.WithTraceback(c.traceback),
	))
}

// functionName returns the bare name of the function at the given level,
// "?" for closures.
func functionName(level int) (string, bool) {
	var programCounters [4]uintptr
	if runtime.Callers(level+1, programCounters[:]) == 0 {
		return "", false
	}
	frame, _ := runtime.CallersFrames(programCounters[:]).Next()
	if frame.Function == "" {
		return "?", true
	}
	name := frame.Function[strings.LastIndexByte(frame.Function, '/')+1:]
	name = name[strings.LastIndexByte(name, '.')+1:]
	if strings.HasPrefix(name, "func") {
		if _, err := strconv.Atoi(name[4:]); err == nil {
			return "?", true
		}
	}
	if _, err := strconv.Atoi(name); err == nil {
		return "?", true
	}
	return name, true
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// integer reads a Go integer of any size; large unsigned values that do not
// fit an int64 are returned as uint64.
func integer(v any) (value any, ok bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u > math.MaxInt64 {
			return u, true
		} else {
			return int64(u), true
		}
	}
	return nil, false
}

// number reads any Go integer or float as a float64.
func number(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// notInteger describes a value that is not an integer: the value itself for
// non-finite floats, its type otherwise.
func notInteger(v any) string {
	if n, ok := number(v); ok && (math.IsInf(n, 0) || math.IsNaN(n)) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return typeName(v)
}

func inRange(value any, tag string) bool {
	return internal.Validator.Var(value, tag) == nil
}

// signedInRange checks an integer read by integer against a validator tag
// over int64.
func signedInRange(value any, tag string) bool {
	signed, ok := value.(int64)
	return ok && inRange(signed, tag)
}

// unsignedInRange checks an integer read by integer against a validator tag
// over uint64.
func unsignedInRange(value any, tag string) bool {
	switch value := value.(type) {
	case int64:
		return value >= 0 && inRange(uint64(value), tag)
	case uint64:
		return inRange(value, tag)
	}
	return false
}

const outOfRange = "an out of range value"

func checkSigned(v any, c config, expected string, tag string) (string, string, bool) {
	value, ok := integer(v)
	if !ok {
		return expected, notInteger(v), false
	}
	if tag != "" && !signedInRange(value, tag) {
		return expected, outOfRange, false
	}
	return "", "", true
}

func checkUnsigned(v any, c config, expected string, tag string) (string, string, bool) {
	value, ok := integer(v)
	if !ok {
		return expected, notInteger(v), false
	}
	if !unsignedInRange(value, tag) {
		return expected, outOfRange, false
	}
	return "", "", true
}

func checkKind(v any, expected string, kinds ...reflect.Kind) (string, string, bool) {
	if v != nil {
		kind := reflect.TypeOf(v).Kind()
		for _, k := range kinds {
			if kind == k {
				return "", "", true
			}
		}
	}
	return expected, typeName(v), false
}

// ========================================

func Pint(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkSigned(v, c, "pint", "min=1"); !ok {
		if value, isInteger := integer(v); isInteger {
			if _, isUnsigned := value.(uint64); isUnsigned {
				return nil
			}
		}
		return argumentError(c, expected, actual)
	}
	return nil
}

func Pint8(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkUnsigned(v, c, "pint8", "min=1,max=255"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Pint16(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkUnsigned(v, c, "pint16", "min=1,max=65535"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Int(v any, options ...Option) error {
	c := newConfig(options)
	if _, ok := integer(v); !ok {
		return argumentError(c, "int", notInteger(v))
	}
	return nil
}

func Int8(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkSigned(v, c, "int8", "min=-128,max=127"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Int16(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkSigned(v, c, "int16", "min=-32768,max=32767"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Int32(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkSigned(v, c, "int32", "min=-2147483648,max=2147483647"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Int64(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkSigned(v, c, "int64", ""); !ok {
		return argumentError(c, expected, actual)
	}
	if value, _ := integer(v); !signedInRange(value, "min=-9223372036854775808") {
		return argumentError(c, "int64", outOfRange)
	}
	return nil
}

func Uint(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkUnsigned(v, c, "uint", "min=0"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Uint8(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkUnsigned(v, c, "uint8", "max=255"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Uint16(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkUnsigned(v, c, "uint16", "max=65535"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Uint32(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkUnsigned(v, c, "uint32", "max=4294967295"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Uint64(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkUnsigned(v, c, "uint64", "max=18446744073709551615"); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

// Unsigned accepts any number that is not negative nor NaN.
func Unsigned(v any, options ...Option) error {
	c := newConfig(options)
	n, ok := number(v)
	switch {
	case !ok:
		return argumentError(c, "unsigned number", typeName(v))
	case math.IsNaN(n):
		return argumentError(c, "unsigned number", "NaN")
	case !inRange(n, "gte=0"):
		return argumentError(c, "unsigned number", "signed number")
	}
	return nil
}

// Finite accepts any number that is neither infinite nor NaN.
func Finite(v any, options ...Option) error {
	c := newConfig(options)
	n, ok := number(v)
	switch {
	case !ok:
		return argumentError(c, "finite number", typeName(v))
	case math.IsInf(n, 0) || math.IsNaN(n):
		return argumentError(c, "finite number", strconv.FormatFloat(n, 'g', -1, 64))
	}
	return nil
}

// Number accepts any number but NaN.
func Number(v any, options ...Option) error {
	c := newConfig(options)
	n, ok := number(v)
	switch {
	case !ok:
		return argumentError(c, "number", typeName(v))
	case math.IsNaN(n):
		return argumentError(c, "number", "NaN")
	}
	return nil
}

func String(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkKind(v, "string", reflect.String); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Boolean(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkKind(v, "boolean", reflect.Bool); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

// Table accepts maps, slices and arrays.
func Table(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkKind(v, "table", reflect.Map, reflect.Slice, reflect.Array); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func Func(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkKind(v, "function", reflect.Func); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

// Userdata accepts structs and pointers.
func Userdata(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkKind(v, "userdata", reflect.Struct, reflect.Pointer); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

// Thread accepts channels.
func Thread(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkKind(v, "thread", reflect.Chan); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

// Pointer accepts unsafe.Pointer and uintptr values.
func Pointer(v any, options ...Option) error {
	c := newConfig(options)
	if expected, actual, ok := checkKind(v, "pointer", reflect.UnsafePointer, reflect.Uintptr); !ok {
		return argumentError(c, expected, actual)
	}
	return nil
}

func File(v any, options ...Option) error {
	c := newConfig(options)
	if file, ok := v.(*os.File); !ok || file == nil {
		return argumentError(c, "FILE*", typeName(v))
	}
	return nil
}

// NoneOrNil accepts nil and nil pointers, maps, slices, funcs, channels and
// interfaces.
func NoneOrNil(v any, options ...Option) error {
	c := newConfig(options)
	if v == nil {
		return nil
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		if rv.IsNil() {
			return nil
		}
	}
	return argumentError(c, "none or nil", typeName(v))
}
