package internal

import "fmt"

const MaxTypeNameLength = 127

// CheckTypeName returns a description of why name is not a valid error type
// name, or an empty string if it is valid.
func CheckTypeName(name string) string {
	if len(name) == 0 || len(name) > MaxTypeNameLength {
		return fmt.Sprintf("string length between 1-%d expected, got %d", MaxTypeNameLength, len(name))
	}
	if !isAlpha(name[0]) {
		return fmt.Sprintf("first letter to be alphabetic character expected, got '%s'", displayByte(name[0]))
	}
	for i := 1; i < len(name); i++ {
		if c := name[i]; !isAlpha(c) && !isDigit(c) && c != '_' && c != '.' {
			return fmt.Sprintf("alphanumeric or '_' or '.' characters expected, got '%s'", displayByte(c))
		}
	}
	return ""
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// displayByte prints c as is when it is printable ASCII, as "\xNN" otherwise.
func displayByte(c byte) string {
	if c >= 0x20 && c < 0x7f {
		return string(rune(c))
	}
	return fmt.Sprintf("\\x%02x", c)
}
