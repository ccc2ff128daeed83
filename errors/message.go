package errors

import (
	"strconv"
	"strings"
)

// Message is the payload of an Error: a value of any kind, the name of the
// failing operation and a status code. A Message is immutable.
type Message struct {
	value   any
	op      string
	code    int
	hasCode bool
}

// NewMessage creates a Message holding value. Only the WithOp and WithCode
// options are used.
func NewMessage(value any, options ...Option) (*Message, error) {
	if value == nil {
		return nil, fail(ValidationError, 1, "message expected, got nil")
	}
	return newMessage(value, newOptions(options), nil), nil
}

// newMessage inherits the code of t unless the options carry one.
func newMessage(value any, o options, t *Type) *Message {
	m := &Message{value: value, op: o.op}
	if o.hasCode {
		m.code, m.hasCode = o.code, true
	} else if t != nil && t.code != CodeUnset {
		m.code, m.hasCode = t.code, true
	}
	return m
}

// Value returns the wrapped value, nil for a Message created by a Type
// without an explicit message.
func (m *Message) Value() any {
	if m == nil {
		return nil
	}
	return m.value
}

func (m *Message) HasValue() bool {
	return m != nil && m.value != nil
}

// Op returns the name of the failing operation, empty if none.
func (m *Message) Op() string {
	if m == nil {
		return ""
	}
	return m.op
}

func (m *Message) Code() (code int, exists bool) {
	if m == nil || !m.hasCode {
		return CodeUnset, false
	}
	return m.code, true
}

// String renders the Message as "[op:<op>][code:<code>] <value>".
func (m *Message) String() string {
	if m == nil {
		return "<nil>"
	}
	var builder strings.Builder
	if m.op != "" {
		builder.WriteString("[op:")
		builder.WriteString(m.op)
		builder.WriteByte(']')
	}
	if m.hasCode {
		builder.WriteString("[code:")
		builder.WriteString(strconv.Itoa(m.code))
		builder.WriteByte(']')
	}
	if builder.Len() > 0 {
		builder.WriteByte(' ')
	}
	text, _ := display(m.value, false)
	builder.WriteString(text)
	return builder.String()
}
