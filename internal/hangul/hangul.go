// Package hangul decomposes Hangul syllables into jamo and composes them back.
//
// Jamo are represented as Hangul Compatibility Jamo runes (ㄱ, ㅏ, ...), the
// same code points people type as standalone emphasis characters (ㅋㅋ, ㅠㅠ).
// A zero Coda means the syllable has no final consonant.
package hangul

import "fmt"

const (
	syllableBase = 0xAC00
	syllableEnd  = 0xD7A3
	jamoFirst    = 0x3131 // ㄱ
	jamoLast     = 0x3163 // ㅣ

	jongN = 28
	jungN = 21
)

var (
	onsets = []rune{
		'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
		'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
	}
	vowels = []rune{
		'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
		'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
	}
	codas = []rune{
		0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
		'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
		'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
	}

	onsetIndex = buildIndex(onsets)
	vowelIndex = buildIndex(vowels)
	codaIndex  = buildIndex(codas)
)

func buildIndex(table []rune) map[rune]int {
	m := make(map[rune]int, len(table))
	for i, r := range table {
		m[r] = i
	}
	return m
}

// Char is a decomposed syllable.
type Char struct {
	Onset rune
	Vowel rune
	Coda  rune // 0 for an open syllable
}

// CodaIsEmpty reports whether the syllable has no final consonant.
func (c Char) CodaIsEmpty() bool { return c.Coda == 0 }

// IsSyllable reports whether r is a precomposed Hangul syllable (가-힣).
func IsSyllable(r rune) bool { return r >= syllableBase && r <= syllableEnd }

// IsJamo reports whether r is a compatibility jamo (ㄱ-ㅣ).
func IsJamo(r rune) bool { return r >= jamoFirst && r <= jamoLast }

// IsKorean reports whether r is a syllable or a compatibility jamo.
func IsKorean(r rune) bool { return IsSyllable(r) || IsJamo(r) }

// IsCodaJamo reports whether r can appear as a final consonant.
func IsCodaJamo(r rune) bool {
	i, ok := codaIndex[r]
	return ok && i != 0
}

// Decompose splits a syllable into its jamo.
// It panics if r is not a precomposed Hangul syllable; callers check IsSyllable first.
func Decompose(r rune) Char {
	if !IsSyllable(r) {
		panic(fmt.Sprintf("hangul: decompose of non-syllable %q (U+%04X)", r, r))
	}
	code := int(r) - syllableBase
	return Char{
		Onset: onsets[code/(jongN*jungN)],
		Vowel: vowels[(code/jongN)%jungN],
		Coda:  codas[code%jongN],
	}
}

// Compose builds a syllable from its jamo. Pass 0 as coda for an open syllable.
// It panics if any jamo is not valid for its slot.
func Compose(onset, vowel, coda rune) rune {
	oi, ok := onsetIndex[onset]
	if !ok {
		panic(fmt.Sprintf("hangul: invalid onset %q", onset))
	}
	vi, ok := vowelIndex[vowel]
	if !ok {
		panic(fmt.Sprintf("hangul: invalid vowel %q", vowel))
	}
	ci, ok := codaIndex[coda]
	if !ok {
		panic(fmt.Sprintf("hangul: invalid coda %q", coda))
	}
	return rune(syllableBase + (oi*jungN+vi)*jongN + ci)
}

// ComposeChar is Compose for an already decomposed Char.
func ComposeChar(c Char) rune { return Compose(c.Onset, c.Vowel, c.Coda) }
