package util

import "github.com/agnivade/levenshtein"

// EditDistance returns the rune-aware Levenshtein distance between a and b.
func EditDistance(a, b string) int {
	if a == b {
		return 0
	}
	return levenshtein.ComputeDistance(a, b)
}
