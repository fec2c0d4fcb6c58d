// Package tokenizer is a greedy dictionary tokenizer. It is not a full
// morphological analyser; it only has to tell a predicate (verb or adjective
// stem followed by an ending) from a noun-like run reliably enough for the
// normalizer's guards.
package tokenizer

import (
	"github.com/Alfex4936/konorm/internal/model"
)

// Lexicon is the dictionary view the tokenizer needs.
type Lexicon interface {
	Contains(pos model.POS, text string) bool
	MaxWordLen() int
}

// Tie-break order when two candidates have the same length.
var wordPOS = []model.POS{
	model.Noun,
	model.Adverb,
	model.Conjunction,
	model.Determiner,
	model.Exclamation,
	model.Modifier,
	model.Josa,
	model.Suffix,
	model.VerbPrefix,
}

var predicatePOS = []model.POS{model.Verb, model.Adjective}

type Tokenizer struct {
	lex Lexicon
}

func New(lex Lexicon) *Tokenizer {
	return &Tokenizer{lex: lex}
}

// Tokenize splits text left to right, taking the longest dictionary match at
// every position. A predicate is a Verb or Adjective stem followed by
// optional pre-endings and an ending; a bare stem does not count. Runs of
// unmatched characters become a single Unknown token.
func (t *Tokenizer) Tokenize(text string) []model.Token {
	rs := []rune(text)
	var toks []model.Token

	unknownStart := -1
	flush := func(end int) {
		if unknownStart >= 0 {
			toks = append(toks, token(rs, unknownStart, end, model.Unknown))
			unknownStart = -1
		}
	}

	for i := 0; i < len(rs); {
		n, pos := t.match(rs, i)
		if n == 0 {
			if unknownStart < 0 {
				unknownStart = i
			}
			i++
			continue
		}
		flush(i)
		toks = append(toks, token(rs, i, i+n, pos))
		i += n
	}
	flush(len(rs))
	return toks
}

func token(rs []rune, start, end int, pos model.POS) model.Token {
	return model.Token{
		Text:   string(rs[start:end]),
		POS:    pos,
		Offset: start,
		Length: end - start,
	}
}

// match returns the length and POS of the longest candidate at i, or 0.
func (t *Tokenizer) match(rs []rune, i int) (int, model.POS) {
	bestLen, bestPOS := 0, model.Unknown

	for _, pos := range predicatePOS {
		if n := t.longestPredicate(rs, i, pos); n > bestLen {
			bestLen, bestPOS = n, pos
		}
	}
	for _, pos := range wordPOS {
		if n := t.longest(rs, i, pos); n > bestLen {
			bestLen, bestPOS = n, pos
		}
	}
	return bestLen, bestPOS
}

func (t *Tokenizer) longest(rs []rune, i int, pos model.POS) int {
	for n := min(t.lex.MaxWordLen(), len(rs)-i); n > 0; n-- {
		if t.lex.Contains(pos, string(rs[i:i+n])) {
			return n
		}
	}
	return 0
}

// longestPredicate matches stem + PreEomi* + Eomi.
func (t *Tokenizer) longestPredicate(rs []rune, i int, pos model.POS) int {
	best := 0
	for n := min(t.lex.MaxWordLen(), len(rs)-i); n > 0; n-- {
		if !t.lex.Contains(pos, string(rs[i:i+n])) {
			continue
		}
		if e := t.ending(rs, i+n); e > 0 && n+e > best {
			best = n + e
		}
	}
	return best
}

// ending returns the length of the longest PreEomi* Eomi chain at i.
func (t *Tokenizer) ending(rs []rune, i int) int {
	best := t.longest(rs, i, model.Eomi)
	for n := min(t.lex.MaxWordLen(), len(rs)-i); n > 0; n-- {
		if !t.lex.Contains(model.PreEomi, string(rs[i:i+n])) {
			continue
		}
		if e := t.ending(rs, i+n); e > 0 && n+e > best {
			best = n + e
		}
	}
	return best
}
