package stringutils

import "strings"

// Truncate shortens a string to at most n runes, adding "..." if it was truncated.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// FirstLine returns s up to its first newline.
func FirstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// ShortAddress abbreviates a long address as "abcd…wxyz".
func ShortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:4] + "…" + addr[len(addr)-4:]
}
