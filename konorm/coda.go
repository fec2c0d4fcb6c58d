package konorm

import (
	"strings"

	"github.com/Alfex4936/konorm/internal/hangul"
	"github.com/Alfex4936/konorm/internal/model"
)

// codaNExceptions end valid non-noun words often enough that an ㄴ coda on
// them is never treated as a contracted copula.
var codaNExceptions = map[rune]struct{}{
	'은': {}, '는': {}, '운': {}, '인': {}, '텐': {}, '근': {},
	'른': {}, '픈': {}, '닌': {}, '든': {}, '던': {},
}

var codaNLast = map[rune]struct{}{'데': {}, '가': {}, '지': {}}

// NormalizeCodaN restores the copula dropped between a noun and an ㄴ-led
// ending: 버슨가 → 버스인가, 보슨지 → 보스인지. The chunk is returned
// unchanged unless the coda-less head is a known noun.
func (n *Normalizer) NormalizeCodaN(chunk string) string {
	rs := []rune(chunk)
	if len(rs) < 2 {
		return chunk
	}
	last := rs[len(rs)-1]
	head := rs[len(rs)-2]

	if n.codaNException(chunk, string(rs[len(rs)-2:]), head) {
		return chunk
	}
	if n.tok != nil {
		if toks := n.tok.Tokenize(chunk); len(toks) > 0 && toks[0].POS.IsPredicate() {
			return chunk
		}
	}

	hc := hangul.Decompose(head)
	newHead := string(rs[:len(rs)-2]) + string(hangul.Compose(hc.Onset, hc.Vowel, 0))

	if _, ok := codaNLast[last]; !ok || hc.Coda != 'ㄴ' || !n.dict.Contains(model.Noun, newHead) {
		return chunk
	}

	var b strings.Builder
	b.Grow(len(newHead) + 2*len("인"))
	b.WriteString(newHead)
	b.WriteRune('인')
	b.WriteRune(last)
	return b.String()
}

func (n *Normalizer) codaNException(chunk, lastTwo string, head rune) bool {
	if n.dict.Contains(model.Noun, chunk) ||
		n.dict.Contains(model.Conjunction, chunk) ||
		n.dict.Contains(model.Adverb, chunk) ||
		n.dict.Contains(model.Noun, lastTwo) {
		return true
	}
	if !hangul.IsSyllable(head) {
		return true
	}
	_, ok := codaNExceptions[head]
	return ok
}
