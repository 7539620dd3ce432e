package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// formatCount formats an integer with comma separators (e.g. 45230 -> "45,230").
func formatCount(n int) string {
	if n < 0 {
		return "-" + formatCount(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatMinutes renders a minute count at a human scale, e.g. "42 min",
// "3 hours", "2 days".
func formatMinutes(minutes float64) string {
	switch {
	case minutes < 1:
		return "under a minute"
	case minutes < 60:
		return fmt.Sprintf("%.0f min", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%.1f hours", minutes/60)
	default:
		return fmt.Sprintf("%.1f days", minutes/(24*60))
	}
}

// terminalWidth returns the current terminal width, or a sane default
// when stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w
	}
	return 100
}

// truncate shortens s to at most n runes, appending "..." when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
