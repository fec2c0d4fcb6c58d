package konorm

import (
	"strings"

	"github.com/Alfex4936/konorm/internal/hangul"
	"github.com/Alfex4936/konorm/internal/model"
)

// normalizeEndings rewrites every ([가-힣]+)(ㅋ+|ㅎ+|[ㅠㅜ]+) match of s.
// The emphasis run is always kept as is; only the word before it changes.
func (n *Normalizer) normalizeEndings(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(rs); {
		if !hangul.IsSyllable(rs[i]) {
			b.WriteRune(rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && hangul.IsSyllable(rs[j]) {
			j++
		}
		k := emphasisEnd(rs, j)
		if k == j {
			b.WriteString(string(rs[i:j]))
			i = j
			continue
		}
		b.WriteString(n.normalizeCandidate(rs[i:j], rs[j:k]))
		b.WriteString(string(rs[j:k]))
		i = k
	}
	return b.String()
}

// emphasisEnd returns the end of the ㅋ+, ㅎ+ or [ㅠㅜ]+ run starting at j,
// or j when rs[j] starts none of them.
func emphasisEnd(rs []rune, j int) int {
	if j >= len(rs) {
		return j
	}
	var same func(rune) bool
	switch c := rs[j]; {
	case c == 'ㅋ' || c == 'ㅎ':
		same = func(r rune) bool { return r == c }
	case isCry(c):
		same = isCry
	default:
		return j
	}
	k := j
	for k < len(rs) && same(rs[k]) {
		k++
	}
	return k
}

func isCry(r rune) bool { return r == 'ㅠ' || r == 'ㅜ' }

// normalizeCandidate leaves words the dictionary already accepts alone.
func (n *Normalizer) normalizeCandidate(word, emphasis []rune) string {
	if n.dict.Contains(model.Noun, string(word)) ||
		n.dict.Contains(model.Eomi, takeLast(word, 1)) ||
		n.dict.Contains(model.Eomi, takeLast(word, 2)) {
		return string(word)
	}
	return normalizeEmotionAttached(word, emphasis)
}

// normalizeEmotionAttached handles the two distortions a trailing emphasis
// run leaves behind: a ㅋ/ㅎ coda glued to the last syllable (됔 → 돼), and a
// last syllable split off the previous open one (나무ㅜ → 남ㅜ).
// Anything else is returned unchanged.
func normalizeEmotionAttached(word, emphasis []rune) string {
	init := word[:len(word)-1]
	hc := hangul.Decompose(word[len(word)-1])

	var prev *hangul.Char
	if len(init) > 0 {
		if c := hangul.Decompose(init[len(init)-1]); c.CodaIsEmpty() {
			prev = &c
		}
	}

	if hc.Coda == 'ㅋ' || hc.Coda == 'ㅎ' {
		return string(init) + string(hangul.Compose(hc.Onset, hc.Vowel, 0))
	} else if hc.CodaIsEmpty() && prev != nil && hc.Vowel == emphasis[0] && hangul.IsCodaJamo(hc.Onset) {
		return string(init[:len(init)-1]) + string(hangul.Compose(prev.Onset, prev.Vowel, hc.Onset))
	}
	return string(word)
}

// takeLast returns the last n runes of rs, or all of them when shorter.
func takeLast(rs []rune, n int) string {
	if len(rs) <= n {
		return string(rs)
	}
	return string(rs[len(rs)-n:])
}
