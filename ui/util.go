package ui

// Clamp keeps `v` within `a` and `b` numerically. `a` must be smaller than `b`.
// Returns clamped `v`.
func Clamp(v, a, b int) int {
	return max(a, min(v, b))
}

// QuickCharInString returns the rune at index `idx` of `str`, lowercased, or
// 0 when the index is out of range. Used to match menu quick-access keys.
func QuickCharInString(str string, idx int) rune {
	if idx < 0 {
		return 0
	}
	runes := []rune(str)
	if idx >= len(runes) {
		return 0
	}
	r := runes[idx]
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return r
}
