package errors

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Where describes the call site at the given stack level, 1 being the caller
// of Where, as "<file>:<line>: in <function>: ". The function part is one of
//
//	in function '<package>.<name>'
//	in method '<receiver>.<name>'
//	in main chunk
//	in function <<file>:<line where the closure is defined>>
//	?
//
// the last one for frames without source such as the runtime. Where returns an
// empty string when the stack is not that deep.
func Where(level int) string {
	return describe(level)
}

// describe(0) describes the caller of describe.
func describe(skip int) string {
	var programCounters [4]uintptr
	if runtime.Callers(skip+2, programCounters[:]) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(programCounters[:]).Next()
	return describeFrame(frame)
}

func describeFrame(frame runtime.Frame) string {
	var builder strings.Builder
	if frame.File != "" {
		builder.WriteString(filepath.Base(frame.File))
		builder.WriteByte(':')
		builder.WriteString(strconv.Itoa(frame.Line))
		builder.WriteString(": ")
	}
	switch {
	case frame.File == "" || frame.Function == "" || strings.HasPrefix(frame.Function, "runtime."):
		builder.WriteString("?")
	case frame.Function == "main.main":
		builder.WriteString("in main chunk")
	default:
		name := shortFunctionName(frame.Function)
		if isClosure(name) {
			builder.WriteString("in function <")
			builder.WriteString(filepath.Base(frame.File))
			builder.WriteByte(':')
			builder.WriteString(strconv.Itoa(definitionLine(frame)))
			builder.WriteByte('>')
		} else if receiver, method, ok := splitMethod(name); ok {
			builder.WriteString("in method '")
			builder.WriteString(receiver)
			builder.WriteByte('.')
			builder.WriteString(method)
			builder.WriteByte('\'')
		} else {
			builder.WriteString("in function '")
			builder.WriteString(unescapePackage(name))
			builder.WriteByte('\'')
		}
	}
	builder.WriteString(": ")
	return builder.String()
}

// shortFunctionName strips the import path: "github.com/a/b.(*T).m" becomes
// "b.(*T).m".
func shortFunctionName(name string) string {
	if slash := strings.LastIndexByte(name, '/'); slash >= 0 {
		return name[slash+1:]
	}
	return name
}

// isClosure reports whether name has a "funcN" element, as in "b.F.func1" or
// "b.glob..func2".
func isClosure(name string) bool {
	for _, element := range strings.Split(name, ".") {
		if digits, ok := strings.CutPrefix(element, "func"); ok && digits != "" {
			if _, err := strconv.Atoi(digits); err == nil {
				return true
			}
		}
	}
	return false
}

// unescapePackage restores the dots of the last import path element, which
// symbol names escape as "%2e": "yaml%2ev3.Marshal" becomes "yaml.v3.Marshal".
func unescapePackage(name string) string {
	return strings.ReplaceAll(name, "%2e", ".")
}

// splitMethod splits "b.(*T).m" or "b.T.m" into its receiver and method name.
// The package ends at the first dot, the dots of the package name being
// escaped.
func splitMethod(name string) (receiver string, method string, ok bool) {
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return "", "", false
	}
	rest := name[dot+1:]
	// the "[...]" of generic instantiations is not a separator
	dot = strings.LastIndexByte(strings.ReplaceAll(rest, "[...]", "[???]"), '.')
	if dot <= 0 {
		return "", "", false
	}
	receiver = strings.TrimSuffix(strings.TrimPrefix(rest[:dot], "(*"), ")")
	return receiver, rest[dot+1:], true
}

func definitionLine(frame runtime.Frame) int {
	if frame.Func == nil {
		return frame.Line
	}
	_, line := frame.Func.FileLine(frame.Func.Entry())
	return line
}
