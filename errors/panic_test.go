package errors_test

import (
	"strings"
	"testing"

	"github.com/thanhminhmr/go-error/errors"
)

func checkStackTrace(t *testing.T, trace errors.StackFrames, suffix string) {
	t.Helper()
	for _, frame := range trace {
		if strings.HasSuffix(frame.Function, suffix) {
			return
		}
	}
	t.Fatalf("expected %q in stack trace %v", suffix, trace)
}

func TestPanicRecoverPair(t *testing.T) {
	defer func() {
		recovered := errors.Recover(recover())
		if recovered == nil {
			t.Fatalf("expected a recovered error")
		}
		if recovered.Message().Value() != "Test" || recovered.Type() != nil {
			t.Fatalf("unexpected error %v", recovered)
		}
		if !strings.Contains(recovered.Where(), "in function 'errors_test.TestPanicRecoverPair'") {
			t.Fatalf("unexpected description %q", recovered.Where())
		}
	}()
	errors.Panic("Test", 0)
}

func TestPanicError(t *testing.T) {
	raised := mustNew(t, "raised")
	defer func() {
		if recovered := errors.Recover(recover()); recovered != raised {
			t.Fatalf("expected the raised error, got %v", recovered)
		}
	}()
	errors.Panic(raised, 0)
}

func TestRecoverRawPanic(t *testing.T) {
	defer func() {
		recovered := errors.Recover(recover())
		if recovered == nil {
			t.Fatalf("expected a recovered error")
		}
		if recovered.Type() != errors.PanicError || recovered.Message().Value() != "Test" {
			t.Fatalf("unexpected error %v", recovered)
		}
		checkStackTrace(t, recovered.Traceback(), "/errors_test.TestRecoverRawPanic")
	}()
	panic("Test")
}

func TestRecoverNothing(t *testing.T) {
	if errors.Recover(nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestMust(t *testing.T) {
	if value := errors.Must(42, nil); value != 42 {
		t.Fatalf("expected 42, got %d", value)
	}
	failure := mustNew(t, "failure")
	defer func() {
		if recovered := errors.Recover(recover()); recovered != failure {
			t.Fatalf("expected the failure, got %v", recovered)
		}
	}()
	errors.Must(0, error(failure))
}
