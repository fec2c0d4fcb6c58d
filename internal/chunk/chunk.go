// Package chunk finds the Korean runs a normalizer works on and splits long
// text into independently processable parts.
package chunk

import (
	"unicode/utf8"

	"github.com/Alfex4936/konorm/internal/hangul"
)

// Span is one maximal run of Hangul syllables and compatibility jamo.
// Start and End are byte offsets into the scanned string.
type Span struct {
	Start int
	End   int
	Text  string
}

// Korean returns every maximal [ㄱ-ㅣ가-힣]+ run of s, left to right.
// Invalid UTF-8 is never part of a span.
func Korean(s string) []Span {
	var spans []Span
	start := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		korean := r != utf8.RuneError && hangul.IsKorean(r)
		switch {
		case korean && start < 0:
			start = i
		case !korean && start >= 0:
			spans = append(spans, Span{Start: start, End: i, Text: s[start:i]})
			start = -1
		}
		i += size
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(s), Text: s[start:]})
	}
	return spans
}

// SplitWords slices s into parts of at most max 어절 each, cutting right
// after a space or newline. Concatenating the parts yields s again.
// ZERO copies, 1 slice alloc.
func SplitWords(s string, max int) []string {
	if max <= 0 {
		return []string{s}
	}

	// Capacity hint: assume "avg 5-bytes-word + 1 space".
	hint := len(s)/(max*6) + 1
	res := make([]string, 0, hint)

	start, words := 0, 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == ' ' || b == '\n' {
			words++
			if words == max {
				res = append(res, s[start:i+1])
				start, words = i+1, 0
			}
		}
	}
	if start < len(s) || len(res) == 0 {
		res = append(res, s[start:])
	}
	return res
}
