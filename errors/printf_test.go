package errors_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/thanhminhmr/go-error/errors"
)

func messageOf(e *errors.Error) any {
	return e.Message().Value()
}

func TestErrorf(t *testing.T) {
	inner := mustNew(t, "inner")
	cases := []struct {
		name     string
		err      *errors.Error
		expected string
		wrap     *errors.Error
	}{
		{"plain", errors.Errorf("read %s", "file"), "read file", nil},
		{"percent", errors.Errorf("%d%% done", 50), "50% done", nil},
		{"quoted", errors.Errorf("bad name %q", "a b"), `bad name "a b"`, nil},
		{"wrap", errors.Errorf("read %s", "file", inner), "read file", inner},
		{"appended", errors.Errorf("open", stderrors.New("denied")), "open: denied", nil},
		{"appended number", errors.Errorf("exit %s", "code", 3), "exit code: 3", nil},
		{"star width", errors.Errorf("[%*d]", 3, 7, inner), "[  7]", inner},
		{"indexed", errors.Errorf("%[2]s %[1]s", "a", "b", "c"), "b a: c", nil},
		{"nil wrap", errors.Errorf("empty", (*errors.Error)(nil)), "empty", nil},
	}
	for _, c := range cases {
		if messageOf(c.err) != c.expected {
			t.Fatalf("%s: expected %q, got %q", c.name, c.expected, messageOf(c.err))
		}
		if c.err.Wrapped() != c.wrap {
			t.Fatalf("%s: expected wrap %v, got %v", c.name, c.wrap, c.err.Wrapped())
		}
		if !strings.Contains(c.err.Where(), "in function 'errors_test.TestErrorf'") {
			t.Fatalf("%s: unexpected description %q", c.name, c.err.Where())
		}
	}
}

func TestTypeErrorf(t *testing.T) {
	registry := errors.NewRegistry(nil)
	notFound, _ := registry.NewType("app.not_found", 404, nil)
	e := notFound.Errorf("user %d not found", 7)
	if e.Type() != notFound || messageOf(e) != "user 7 not found" {
		t.Fatalf("unexpected error %v", e)
	}
	if code, _ := e.Message().Code(); code != 404 {
		t.Fatalf("expected the code of the type, got %d", code)
	}
	if !strings.Contains(e.Where(), "in function 'errors_test.TestTypeErrorf'") {
		t.Fatalf("unexpected description %q", e.Where())
	}
}
