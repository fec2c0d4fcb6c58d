// Package konorm rewrites colloquially typed Korean into canonical spelling
// ahead of tokenization.
//
// It fixes exclamation consonants glued onto a syllable (안됔ㅋㅋ → 안돼ㅋㅋ),
// collapses elongated emphasis (ㅋㅋㅋㅋㅋ → ㅋㅋㅋ), restores the copula
// dropped before an ㄴ ending (버슨가 → 버스인가) and applies a typo
// dictionary. Only maximal runs of Hangul syllables and jamo are rewritten;
// everything else is copied through byte for byte.
//
// A Normalizer never performs I/O and holds no mutable state. It is safe for
// concurrent use by multiple goroutines as long as its Dictionary and
// Tokenizer are.
package konorm

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Alfex4936/konorm/internal/chunk"
	"github.com/Alfex4936/konorm/internal/model"
)

type (
	POS       = model.POS
	Token     = model.Token
	TypoGroup = model.TypoGroup
	Result    = model.Result
	Rewrite   = model.Rewrite
)

// Dictionary answers part-of-speech membership questions.
// Implementations must be safe for concurrent reads.
type Dictionary interface {
	Contains(pos POS, text string) bool
	// TyposByLength returns misspelling groups ordered by ascending key length.
	TyposByLength() []TypoGroup
}

// Tokenizer splits a Korean run into tokens. Only the first token's POS is used.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// Rule names one pipeline stage.
type Rule string

const (
	RuleEnding     Rule = "ending"
	RuleRepeatChar Rule = "repeat-char"
	RuleRepeat2    Rule = "repeat-2"
	RuleRepeat3    Rule = "repeat-3"
	RuleCodaN      Rule = "coda-n"
	RuleTypo       Rule = "typo"
	RuleWhitespace Rule = "whitespace"
)

var whitespaceRe = regexp.MustCompile(`[\t\n\v\f\r ]+`)

// Normalizer runs the rewrite pipeline over Korean runs.
type Normalizer struct {
	dict Dictionary
	tok  Tokenizer
	log  *slog.Logger
	hook func(Rule)
	nfc  bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger logs rule firings and typo substitutions at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.log = l
		}
	}
}

// WithRuleHook calls fn every time a rule changes a run.
func WithRuleHook(fn func(Rule)) Option {
	return func(n *Normalizer) { n.hook = fn }
}

// WithNFC composes input to Unicode NFC before scanning, so decomposed
// (U+1100 conjoining) jamo sequences are treated as syllables. The whole
// input is composed, gaps included: "e\u0301" comes back as "é".
func WithNFC() Option {
	return func(n *Normalizer) { n.nfc = true }
}

// WithUserDict layers d over the Normalizer's dictionary.
func WithUserDict(d *Dict) Option {
	return func(n *Normalizer) {
		if d != nil {
			n.dict = d.overlay(n.dict)
		}
	}
}

// New returns a Normalizer backed by dict and tok.
// A nil dict behaves as an empty dictionary; a nil tok disables the
// predicate guard of the coda-n rule.
func New(dict Dictionary, tok Tokenizer, opts ...Option) *Normalizer {
	if dict == nil {
		dict = emptyDictionary{}
	}
	n := &Normalizer{
		dict: dict,
		tok:  tok,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// WithDict returns a copy of n that also consults d. n is left untouched.
func (n *Normalizer) WithDict(d *Dict) *Normalizer {
	if d == nil || d.empty() {
		return n
	}
	cp := *n
	cp.dict = d.overlay(n.dict)
	return &cp
}

// Normalize rewrites every Korean run of input and copies the rest verbatim.
// Blank input is returned unchanged.
func (n *Normalizer) Normalize(input string) string {
	if strings.TrimSpace(input) == "" {
		return input
	}
	if n.nfc {
		input = composeNFC(input)
	}

	spans := chunk.Korean(input)
	if len(spans) == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))
	last := 0
	for _, sp := range spans {
		b.WriteString(input[last:sp.Start])
		out, _ := n.normalizeChunk(sp.Text)
		b.WriteString(out)
		last = sp.End
	}
	b.WriteString(input[last:])
	return b.String()
}

// normalizeChunk runs the pipeline over one Korean run and reports which
// rules changed it.
func (n *Normalizer) normalizeChunk(text string) (string, []Rule) {
	var fired []Rule
	cur := text
	apply := func(rule Rule, f func(string) string) {
		next := f(cur)
		if next != cur {
			fired = append(fired, rule)
			n.log.Debug("rule fired", "rule", string(rule), "from", cur, "to", next)
			if n.hook != nil {
				n.hook(rule)
			}
		}
		cur = next
	}

	// 안됔ㅋㅋㅋ -> 안돼ㅋㅋㅋ
	apply(RuleEnding, n.normalizeEndings)
	// ㅋㅋㅋㅋㅋㅋ -> ㅋㅋㅋ
	apply(RuleRepeatChar, collapseRepeatedChars)
	// 훌쩍훌쩍훌쩍훌쩍 -> 훌쩍훌쩍
	apply(RuleRepeat2, func(s string) string { return collapseRepeatedGroups(s, 2) })
	// 사브작사브작사브작 -> 사브작사브작
	apply(RuleRepeat3, func(s string) string { return collapseRepeatedGroups(s, 3) })
	// 소린가 -> 소리인가
	apply(RuleCodaN, n.NormalizeCodaN)
	// 하겟다 -> 하겠다
	apply(RuleTypo, n.CorrectTypo)
	apply(RuleWhitespace, func(s string) string { return whitespaceRe.ReplaceAllString(s, " ") })

	return cur, fired
}

func composeNFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

type emptyDictionary struct{}

func (emptyDictionary) Contains(POS, string) bool { return false }
func (emptyDictionary) TyposByLength() []TypoGroup { return nil }
