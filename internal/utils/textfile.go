package utils

import "strings"

// CountWords counts whitespace-separated tokens, matching how word limits
// are presented to users.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
