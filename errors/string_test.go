package errors_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/thanhminhmr/go-error/errors"
)

type badStringifier struct{}

func (badStringifier) Stringify() any { return 42 }

type goodStringifier struct{ name string }

func (s goodStringifier) Stringify() any { return "custom " + s.name }

func TestRenderPlain(t *testing.T) {
	e := mustNew(t, "boom")
	text, err := e.ToString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != e.Where()+"boom" || e.Error() != text {
		t.Fatalf("unexpected rendering %q", text)
	}
	if e.Where() == "" {
		t.Fatalf("expected a call-site prefix")
	}
}

func TestRenderTyped(t *testing.T) {
	registry := errors.NewRegistry(nil)
	readError, _ := registry.NewType("io.read_error", 5, nil)
	e, _ := readError.New("disk failure")
	text, err := e.ToString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != e.Where()+"[io.read_error:5] disk failure" {
		t.Fatalf("unexpected rendering %q", text)
	}

	unset, _ := registry.NewType("io.unset", errors.CodeUnset, nil)
	e, _ = unset.New("boom", errors.WithOp("read"))
	if e.Error() != e.Where()+"[io.unset:-1][read] boom" {
		t.Fatalf("unexpected rendering %q", e.Error())
	}

	defaulted, _ := registry.NewType("io.timeout", 7, "operation timed out")
	e, _ = defaulted.New(nil)
	if e.Error() != e.Where()+"[io.timeout:7] operation timed out" {
		t.Fatalf("unexpected rendering %q", e.Error())
	}
	e, _ = defaulted.New("after 5s")
	if e.Error() != e.Where()+"[io.timeout:7] operation timed out (after 5s)" {
		t.Fatalf("unexpected rendering %q", e.Error())
	}
}

func TestRenderOp(t *testing.T) {
	e := mustNew(t, "boom", errors.WithOp("read"))
	if e.Error() != e.Where()+"[op:read] boom" {
		t.Fatalf("unexpected rendering %q", e.Error())
	}
}

func TestRenderChain(t *testing.T) {
	inner := mustNew(t, "low-level failure")
	outer := mustNew(t, "high-level failure", errors.WithWrap(inner))
	text, err := outer.ToString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != outer.Where()+"high-level failure\n"+inner.Where()+"low-level failure" {
		t.Fatalf("unexpected rendering %q", text)
	}
}

func TestRenderValues(t *testing.T) {
	values := map[any]string{
		42:                          "42",
		int8(-3):                    "-3",
		uint64(7):                   "7",
		1.5:                         "1.5",
		float32(0.25):               "0.25",
		true:                        "true",
		goodStringifier{name: "x"}: "custom x",
		errors.ArgumentError:        "ArgumentError: 0x",
		struct{ A int }{A: 1}:       "struct { A int }: {1}",
	}
	for value, want := range values {
		e := mustNew(t, value)
		if text := strings.TrimPrefix(e.Error(), e.Where()); !strings.HasPrefix(text, want) {
			t.Fatalf("expected %q to render as %q, got %q", value, want, text)
		}
	}
	slice := []int{1}
	e := mustNew(t, slice)
	if text := strings.TrimPrefix(e.Error(), e.Where()); !strings.HasPrefix(text, "[]int: 0x") {
		t.Fatalf("expected a reference rendering, got %q", text)
	}
	inner := mustNew(t, "inner")
	e = mustNew(t, inner)
	if text := strings.TrimPrefix(e.Error(), e.Where()); text != inner.Error() {
		t.Fatalf("expected the error rendering, got %q", text)
	}
}

func TestRenderBadStringifier(t *testing.T) {
	e := mustNew(t, badStringifier{})
	if _, err := e.ToString(); err == nil {
		t.Fatalf("expected the rendering to fail")
	} else {
		expectType(t, err, errors.TypeError)
		if !strings.Contains(err.Error(), "'Stringify' must return a string, got int") {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
	if text := e.Error(); text != e.Where()+"errors_test.badStringifier: {}" {
		t.Fatalf("unexpected lenient rendering %q", text)
	}
}

func TestRenderTraceback(t *testing.T) {
	e := mustNew(t, "boom", errors.WithTraceback(true))
	text := e.Error()
	if !strings.HasPrefix(text, e.Where()+"boom\nstack traceback:\n\t") {
		t.Fatalf("unexpected rendering %q", text)
	}
	if !strings.Contains(text, "in function 'errors_test.TestRenderTraceback'") {
		t.Fatalf("expected the traceback to contain the caller, got %q", text)
	}
}

func TestRenderChainLimit(t *testing.T) {
	errors.Configure(&errors.Config{MaxChainDepth: 2})
	t.Cleanup(func() { errors.Configure(&errors.Config{MaxChainDepth: errors.DefaultMaxChainDepth}) })
	first := mustNew(t, "first")
	second := mustNew(t, "second", errors.WithWrap(first))
	third := mustNew(t, "third", errors.WithWrap(second))
	if _, err := second.ToString(); err != nil {
		t.Fatalf("expected a chain within the limit to render, got %v", err)
	}
	_, err := third.ToString()
	expectType(t, err, errors.InternalError)
	if !strings.HasSuffix(third.Error(), "\n...") {
		t.Fatalf("expected a truncated rendering, got %q", third.Error())
	}
	if _, err = third.Match("first"); err == nil {
		t.Fatalf("expected the match to fail")
	}
}

func TestFormat(t *testing.T) {
	registry := errors.NewRegistry(nil)
	readError, _ := registry.NewType("io.read_error", 5, nil)
	inner, _ := readError.New("disk failure", errors.WithOp("read"))
	e := mustNew(t, "boom", errors.WithWrap(inner))
	if fmt.Sprintf("%s", e) != e.Error() || fmt.Sprintf("%v", e) != e.Error() {
		t.Fatalf("expected %%s and %%v to render Error()")
	}
	if fmt.Sprintf("%q", e) != fmt.Sprintf("%q", e.Error()) {
		t.Fatalf("expected %%q to quote Error()")
	}
	verbose := fmt.Sprintf("%+v", e)
	for _, want := range []string{
		`msg="boom"`,
		"\ncause: ",
		`msg="disk failure" type=io.read_error code=5 op=read message_code=5`,
	} {
		if !strings.Contains(verbose, want) {
			t.Fatalf("expected %q in %q", want, verbose)
		}
	}
}

type nilSafeless struct{ text string }

func (e *nilSafeless) Error() string { return e.text }

func TestRenderNilReceivers(t *testing.T) {
	var builder *strings.Builder
	var stringifier *goodStringifier
	var failure *nilSafeless
	values := map[any]string{
		builder:     "*strings.Builder: nil",
		stringifier: "*errors_test.goodStringifier: nil",
		failure:     "*errors_test.nilSafeless: nil",
	}
	for value, want := range values {
		e := mustNew(t, value)
		if text := strings.TrimPrefix(e.Error(), e.Where()); text != want {
			t.Fatalf("expected %q, got %q", want, text)
		}
		if text, err := e.ToString(); err != nil || text != e.Error() {
			t.Fatalf("expected %q, got %q %v", e.Error(), text, err)
		}
		if text := fmt.Sprintf("%v", e); text != e.Error() {
			t.Fatalf("expected %q, got %q", e.Error(), text)
		}
		if text := e.Message().String(); !strings.HasSuffix(text, want) {
			t.Fatalf("expected %q, got %q", want, text)
		}
	}
}
