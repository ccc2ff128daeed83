package errors

// Panic panics with message converted to an *Error described at the caller
// of Panic, skipping skip more frames. An *Error is raised as is.
func Panic(message any, skip int) {
	if e, ok := message.(*Error); ok && e != nil {
		panic(e)
	}
	e, err := build(message, options{skip: skip + 1}, nil, 1)
	if err != nil {
		panic(err)
	}
	panic(e)
}

// Recover converts a recovered value into an *Error. An *Error is returned as
// is, any other value becomes the message of a PanicError with a traceback
// starting at the caller of Recover. A nil value returns nil.
//
//	defer func() {
//		if err := errors.Recover(recover()); err != nil {
//			...
//		}
//	}()
func Recover(recovered any) *Error {
	switch recovered := recovered.(type) {
	case nil:
		return nil
	case *Error:
		if recovered != nil {
			return recovered
		}
		return nil
	}
	e, err := build(recovered, options{skip: 1, traceback: true}, PanicError, 1)
	if err != nil {
		return err
	}
	return e
}

// Must returns value, or panics with err if it is not nil.
func Must[T any](value T, err error) T {
	if err != nil {
		Panic(err, 1)
	}
	return value
}
