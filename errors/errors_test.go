package errors_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/thanhminhmr/go-error/errors"
)

func mustNew(t *testing.T, message any, options ...errors.Option) *errors.Error {
	t.Helper()
	e, err := errors.New(message, append([]errors.Option{errors.WithSkip(2)}, options...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

func expectType(t *testing.T, err error, expected *errors.Type) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", expected.Name())
	}
	if !errors.Is(err, expected) {
		t.Fatalf("expected %s, got %v", expected.Name(), err)
	}
}

func TestNew(t *testing.T) {
	e := mustNew(t, "boom")
	if e.Message().Value() != "boom" {
		t.Fatalf("expected message value boom, got %v", e.Message().Value())
	}
	if e.Type() != nil || e.Wrapped() != nil || e.Unwrap() != nil {
		t.Fatalf("expected no type and no wrap, got %v %v", e.Type(), e.Wrapped())
	}
	if !strings.HasPrefix(e.Where(), "errors_test.go:") ||
		!strings.HasSuffix(e.Where(), ": in function 'errors_test.TestNew': ") {
		t.Fatalf("unexpected where %q", e.Where())
	}
	if e.Traceback() != nil {
		t.Fatalf("expected no traceback, got %v", e.Traceback())
	}
}

func TestNewInvalid(t *testing.T) {
	e, err := errors.New(nil)
	if e != nil {
		t.Fatalf("expected no error value, got %v", e)
	}
	expectType(t, err, errors.ValidationError)

	_, err = errors.New((*errors.Message)(nil))
	expectType(t, err, errors.ValidationError)

	_, err = errors.New("boom", errors.WithSkip(0))
	expectType(t, err, errors.ValidationError)
	_, err = errors.New("boom", errors.WithSkip(errors.MaxLevel+1))
	expectType(t, err, errors.ValidationError)

	_, err = errors.New("boom", errors.WithWrap(stderrors.New("plain")))
	expectType(t, err, errors.TypeError)
	if !strings.Contains(err.Error(), "*errors.Error expected as wrapped error, got *errors.errorString") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !strings.Contains(err.Error(), "in function 'errors_test.TestNewInvalid'") {
		t.Fatalf("expected the failure to be described at the caller, got %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	inner := mustNew(t, "low-level failure")
	outer := mustNew(t, "high-level failure", errors.WithWrap(inner))
	if outer.Wrapped() != inner {
		t.Fatalf("expected the wrapped error to be inner")
	}
	if outer.Unwrap() != error(inner) || errors.Unwrap(outer) != error(inner) {
		t.Fatalf("expected unwrap to return inner")
	}
	if !errors.Is(outer, inner) {
		t.Fatalf("expected outer to wrap inner")
	}
	var target *errors.Error
	if !errors.As(outer, &target) || target != outer {
		t.Fatalf("expected As to find outer, got %v", target)
	}
	unwrapped := mustNew(t, "boom", errors.WithWrap(nil))
	if unwrapped.Unwrap() != nil {
		t.Fatalf("expected a nil wrap to be absent")
	}
}

func TestMessageOptions(t *testing.T) {
	e := mustNew(t, "boom", errors.WithOp("read"), errors.WithCode(7))
	if e.Message().Op() != "read" {
		t.Fatalf("expected op read, got %q", e.Message().Op())
	}
	if code, exists := e.Message().Code(); !exists || code != 7 {
		t.Fatalf("expected code 7, got %d %v", code, exists)
	}
	if code, exists := mustNew(t, "boom").Message().Code(); exists || code != errors.CodeUnset {
		t.Fatalf("expected no code, got %d %v", code, exists)
	}
}

func TestNewMessage(t *testing.T) {
	if _, err := errors.NewMessage(nil); err == nil {
		t.Fatalf("expected nil message to fail")
	} else {
		expectType(t, err, errors.ValidationError)
	}
	m, err := errors.NewMessage("disk full", errors.WithOp("write"), errors.WithCode(28))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "[op:write][code:28] disk full" {
		t.Fatalf("unexpected rendering %q", m.String())
	}
	e := mustNew(t, m)
	if e.Message() != m {
		t.Fatalf("expected the message to be used as is")
	}
	for _, option := range []errors.Option{errors.WithOp("read"), errors.WithCode(5)} {
		if _, err := errors.New(m, option); err == nil {
			t.Fatalf("expected an option on a prebuilt message to fail")
		} else {
			expectType(t, err, errors.ValidationError)
		}
	}
	plain, _ := errors.NewMessage(42)
	if plain.String() != "42" || !plain.HasValue() {
		t.Fatalf("unexpected rendering %q", plain.String())
	}
}

func TestTypedNew(t *testing.T) {
	registry := errors.NewRegistry(nil)
	coded, err := registry.NewType("io.read_error", 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, err := coded.New("disk failure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Type() != coded || errors.TypeOf(e) != coded {
		t.Fatalf("expected the type to be stamped")
	}
	if code, exists := e.Message().Code(); !exists || code != 5 {
		t.Fatalf("expected the code of the type, got %d %v", code, exists)
	}
	overridden, _ := coded.New("disk failure", errors.WithCode(9))
	if code, _ := overridden.Message().Code(); code != 9 {
		t.Fatalf("expected the explicit code, got %d", code)
	}
	if !errors.Is(e, coded) {
		t.Fatalf("expected errors.Is to match the type")
	}
	if _, err = coded.New(nil); err == nil {
		t.Fatalf("expected a nil message without default to fail")
	} else {
		expectType(t, err, errors.ValidationError)
	}

	defaulted, _ := registry.NewType("io.timeout", errors.CodeUnset, "operation timed out")
	e, err = defaulted.New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Message().HasValue() || e.Message().Value() != nil {
		t.Fatalf("expected the defaulted message to hold no value, got %v", e.Message().Value())
	}
	if _, exists := e.Message().Code(); exists {
		t.Fatalf("expected no code")
	}

	var missing *errors.Type
	_, err = missing.New("boom")
	expectType(t, err, errors.ArgumentError)
}

func TestCompatible(t *testing.T) {
	e := mustNew(t, "boom")
	if cause, isMessage := errors.Cause(e); !isMessage || cause != e.Message() {
		t.Fatalf("expected the message of the error, got %v %v", cause, isMessage)
	}
	if cause, isMessage := errors.Cause(e.Message()); !isMessage || cause != e.Message() {
		t.Fatalf("expected the message itself, got %v %v", cause, isMessage)
	}
	if cause, isMessage := errors.Cause("text"); isMessage || cause != "text" {
		t.Fatalf("expected the value itself, got %v %v", cause, isMessage)
	}
	if cause, isMessage := errors.Cause(nil); isMessage || cause != nil {
		t.Fatalf("expected nil, got %v %v", cause, isMessage)
	}

	if errors.TypeOf(e) != nil || errors.TypeOf("text") != nil {
		t.Fatalf("expected no type")
	}
	if errors.TypeOf(errors.ArgumentError) != errors.ArgumentError {
		t.Fatalf("expected the type itself")
	}

	if errors.ToError(e) != e {
		t.Fatalf("expected the error itself")
	}
	if errors.ToError(nil) != nil {
		t.Fatalf("expected nil")
	}
	converted := errors.ToError("boom")
	if converted.Message().Value() != "boom" ||
		!strings.Contains(converted.Where(), "in function 'errors_test.TestCompatible'") {
		t.Fatalf("unexpected conversion %q", converted.Error())
	}
}

func TestDebug(t *testing.T) {
	errors.SetDebug(true)
	t.Cleanup(func() { errors.SetDebug(false) })
	if !errors.Debug() {
		t.Fatalf("expected debug to be enabled")
	}
	e := mustNew(t, "boom")
	if len(e.Traceback()) == 0 {
		t.Fatalf("expected a traceback in debug mode")
	}
	if !strings.HasSuffix(e.Traceback()[0].Function, "/errors_test.TestDebug") {
		t.Fatalf("expected the traceback to start at the caller, got %+v", e.Traceback()[0])
	}
}
