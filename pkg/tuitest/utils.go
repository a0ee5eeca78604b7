// Package tuitest provides helpers for asserting on rendered TUI output.
package tuitest

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences and trailing whitespace so rendered
// output can be compared as plain text without being fragile to styling.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
