package errors

// Option configures the construction of an Error or a Message.
type Option func(*options)

type options struct {
	wrap      error
	skip      int
	traceback bool
	op        string
	code      int
	hasCode   bool
}

func newOptions(list []Option) options {
	o := options{skip: 1}
	for _, option := range list {
		if option != nil {
			option(&o)
		}
	}
	return o
}

// WithWrap sets the cause of the Error. The cause must be an *Error, nil means
// no cause.
func WithWrap(err error) Option { return func(o *options) { o.wrap = err } }

// WithSkip sets the stack level described by Where: 1, the default, is the
// caller of the constructor, 2 is its caller and so on.
func WithSkip(level int) Option { return func(o *options) { o.skip = level } }

// WithTraceback captures a stack traceback when enabled.
func WithTraceback(enabled bool) Option { return func(o *options) { o.traceback = enabled } }

// WithOp sets the name of the failing operation on the Message.
func WithOp(op string) Option { return func(o *options) { o.op = op } }

// WithCode sets the code of the Message, overriding the code of the Type.
func WithCode(code int) Option {
	return func(o *options) {
		o.code = code
		o.hasCode = true
	}
}
