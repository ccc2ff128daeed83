//go:build !no_zerolog

package errors

import "github.com/rs/zerolog"

func (e *Error) MarshalZerologObject(event *zerolog.Event) {
	if e == nil {
		return
	}
	event.Str("error", e.Error())
	e.marshalFields(event)
	if e.wrap != nil {
		event.Array("wrap", wrapChain{first: e.wrap})
	}
}

func (e *Error) marshalFields(event *zerolog.Event) {
	if e.typ != nil {
		event.Object("type", e.typ)
	}
	event.Object("message", e.message)
	event.Str("where", e.where)
	if e.traceback != nil {
		event.Array("stack_trace", e.traceback)
	}
}

// errorFields marshals an Error without its wrapped Errors.
type errorFields struct {
	*Error
}

func (f errorFields) MarshalZerologObject(event *zerolog.Event) {
	f.marshalFields(event)
}

type wrapChain struct {
	first *Error
}

func (c wrapChain) MarshalZerologArray(array *zerolog.Array) {
	limit := MaxChainDepth()
	depth := 0
	for current := c.first; current != nil && depth < limit; current = current.wrap {
		array.Object(errorFields{current})
		depth++
	}
}

func (t *Type) MarshalZerologObject(event *zerolog.Event) {
	if t == nil {
		return
	}
	event.Str("name", t.name).Int("code", t.code)
	if t.message != nil {
		event.Any("message", t.message)
	}
}

func (m *Message) MarshalZerologObject(event *zerolog.Event) {
	if m == nil {
		return
	}
	if m.value != nil {
		text, _ := display(m.value, false)
		event.Str("value", text)
	}
	if m.op != "" {
		event.Str("op", m.op)
	}
	if m.hasCode {
		event.Int("code", m.code)
	}
}

func (f StackFrame) MarshalZerologObject(event *zerolog.Event) {
	event.Str("function", f.Function).Str("file", f.File).Int("line", f.Line)
}

func (s StackFrames) MarshalZerologArray(array *zerolog.Array) {
	for _, frame := range s {
		array.Object(frame)
	}
}
