package konorm

// The collapse passes below reproduce the backreference patterns
//
//	(.)\1{3,}|[ㅠㅜ]{3,}   → first 3 characters
//	(..)\1{2,}             → first 4 characters
//	(...)\1{2,}            → first 6 characters
//
// with leftmost, greedy, non-overlapping replacement. RE2 has no
// backreferences, hence the hand-written scanners. Each pass runs once;
// their order matters.

// collapseRepeatedChars shortens runs of 4+ identical characters, and runs
// of 3+ mixed ㅠ/ㅜ, to their first 3 characters.
func collapseRepeatedChars(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))

	for i := 0; i < len(rs); {
		if !isLineTerminator(rs[i]) {
			j := i + 1
			for j < len(rs) && rs[j] == rs[i] {
				j++
			}
			if j-i >= 4 {
				out = append(out, rs[i], rs[i], rs[i])
				i = j
				continue
			}
		}
		if isCry(rs[i]) {
			j := i
			for j < len(rs) && isCry(rs[j]) {
				j++
			}
			if j-i >= 3 {
				out = append(out, rs[i:i+3]...)
				i = j
				continue
			}
		}
		out = append(out, rs[i])
		i++
	}
	return string(out)
}

// collapseRepeatedGroups shortens a size-character group repeated 3+ times
// in a row to two repetitions.
func collapseRepeatedGroups(s string, size int) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))

	for i := 0; i < len(rs); {
		if reps := groupRepeats(rs, i, size); reps >= 3 {
			out = append(out, rs[i:i+2*size]...)
			i += reps * size
			continue
		}
		out = append(out, rs[i])
		i++
	}
	return string(out)
}

// groupRepeats counts how many times rs[i:i+size] repeats back to back from i.
func groupRepeats(rs []rune, i, size int) int {
	if i+size > len(rs) {
		return 0
	}
	group := rs[i : i+size]
	for _, r := range group {
		if isLineTerminator(r) {
			return 0
		}
	}
	reps := 1
	for next := i + size; next+size <= len(rs); next += size {
		if !equalRunes(rs[next:next+size], group) {
			break
		}
		reps++
	}
	return reps
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isLineTerminator mirrors the characters '.' refuses to match.
func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
