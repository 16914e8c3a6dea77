package util

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey returns the form under which a natural key (username, question
// text, title) is stored and looked up: NFC with surrounding space removed.
// "é" typed as one code point or as "e" plus a combining accent maps to the same key.
func NormalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Preview returns the first n runes of s.
func Preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
