package utils

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims and lowercases an address and reports whether it parses.
func NormalizeEmail(email string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return normalized, false
	}
	return normalized, true
}

// Truncate shortens s to at most n runes, for log fields.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
