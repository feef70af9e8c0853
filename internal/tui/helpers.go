package tui

import "github.com/mattn/go-runewidth"

// truncate shortens s to max display cells with an ellipsis
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	return runewidth.Truncate(s, max, "…")
}

// clamp keeps i within [0, n)
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
