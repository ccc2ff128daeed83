package errors

import (
	"runtime"
	"strconv"
	"strings"
)

type StackFrame struct {
	Function string
	File     string
	Line     int
}

type StackFrames []StackFrame

// StackTrace captures the stack starting at the caller of StackTrace, skipping
// skip more frames. The depth is bounded by the configured traceback depth.
func StackTrace(skip int) StackFrames {
	depth := TracebackDepth()
	programCounters := make([]uintptr, depth)
	programCountersLength := runtime.Callers(2+skip, programCounters)
	if programCountersLength == 0 {
		return nil
	}
	frames := runtime.CallersFrames(programCounters[:programCountersLength])
	stack := make(StackFrames, 0, programCountersLength)
	for len(stack) < depth {
		frame, more := frames.Next()
		stack = append(stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return stack
}

// String renders the frames as
//
//	stack traceback:
//		<file>:<line>: in function '<name>'
func (s StackFrames) String() string {
	var builder strings.Builder
	builder.WriteString("stack traceback:")
	for _, frame := range s {
		builder.WriteString("\n\t")
		builder.WriteString(frame.File)
		builder.WriteByte(':')
		builder.WriteString(strconv.Itoa(frame.Line))
		builder.WriteString(": in function '")
		builder.WriteString(shortFunctionName(frame.Function))
		builder.WriteByte('\'')
	}
	return builder.String()
}
