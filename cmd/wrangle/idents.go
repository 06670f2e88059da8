package main

import (
	"strings"
	"unicode"
)

// makeIdentTitle turns a mnemonic such as "mov3q.l" into an exported Go
// identifier such as "Mov3QL".
func makeIdentTitle(inp string) string {
	var b strings.Builder
	nextUpper := true
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			nextUpper = true
		case unicode.IsLetter(r):
			if nextUpper {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteString(strings.ToLower(string(r)))
			}
			nextUpper = false
		case r == '+':
			b.WriteString("Plus")
			nextUpper = true
		default:
			nextUpper = true
		}
	}
	return b.String()
}
