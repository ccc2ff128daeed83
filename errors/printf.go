package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Errorf creates an Error whose message is fmt.Sprintf(format, args...).
// Arguments left over by format are not formatted: the first of them, if an
// *Error, becomes the wrapped Error, otherwise its text is appended to the
// message after ": ".
func Errorf(format string, args ...any) *Error {
	return errorf(nil, format, args)
}

func errorf(t *Type, format string, args []any) *Error {
	operands := min(countOperands(format), len(args))
	message := fmt.Sprintf(format, args[:operands]...)
	o := options{skip: 1}
	if operands < len(args) {
		if wrap, ok := args[operands].(*Error); ok {
			if wrap != nil {
				o.wrap = wrap
			}
		} else {
			text, _ := display(args[operands], false)
			message += ": " + text
		}
	}
	e, err := build(message, o, t, 2)
	if err != nil {
		return err
	}
	return e
}

// countOperands returns the number of arguments consumed by a fmt format,
// including '*' widths and precisions and explicit argument indexes.
func countOperands(format string) int {
	count, next := 0, 0
	consume := func() {
		next++
		count = max(count, next)
	}
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			continue
		}
	directive:
		for ; i < len(format); i++ {
			switch c := format[i]; {
			case strings.IndexByte("+-# 0.", c) >= 0 || c >= '1' && c <= '9':
			case c == '*':
				consume()
			case c == '[':
				end := strings.IndexByte(format[i:], ']')
				if end < 0 {
					i = len(format)
					break directive
				}
				if index, err := strconv.Atoi(format[i+1 : i+end]); err == nil && index > 0 {
					next = index - 1
				}
				i += end
			default:
				break directive
			}
		}
		if i < len(format) {
			consume()
		}
	}
	return count
}
