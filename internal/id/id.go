// Package id holds the character rules shared by account ids and passwords.
package id

import "unicode"

// Admin is the id of the account that always exists and survives a reset.
const Admin = "admin"

// Valid reports whether s is usable as an account id or password: non-empty,
// no whitespace, and only ASCII letters and digits.
//
// The allowed class nominally includes the space character, but the
// whitespace rule takes precedence, so spaces are rejected too.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return false
		}
		if !isAlnum(r) {
			return false
		}
	}
	return true
}

func isAlnum(r rune) bool {
	return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
}
