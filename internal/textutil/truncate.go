// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil holds small string helpers shared by the CLI and the
// search client.
package textutil

// Truncate shortens s to at most max runes, replacing the tail with "...".
// Cuts fall on rune boundaries so the result stays valid UTF-8.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
