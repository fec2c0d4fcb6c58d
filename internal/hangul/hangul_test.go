package hangul

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		in   rune
		want Char
	}{
		{'가', Char{'ㄱ', 'ㅏ', 0}},
		{'됔', Char{'ㄷ', 'ㅙ', 'ㅋ'}},
		{'뮤', Char{'ㅁ', 'ㅠ', 0}},
		{'슨', Char{'ㅅ', 'ㅡ', 'ㄴ'}},
		{'힣', Char{'ㅎ', 'ㅣ', 'ㅎ'}},
		{'값', Char{'ㄱ', 'ㅏ', 'ㅄ'}},
	}
	for _, tt := range tests {
		got := Decompose(tt.in)
		if got != tt.want {
			t.Errorf("Decompose(%q) = %q, want %q", tt.in, []rune{got.Onset, got.Vowel, got.Coda}, []rune{tt.want.Onset, tt.want.Vowel, tt.want.Coda})
		}
	}
}

func TestCompose(t *testing.T) {
	assert.Equal(t, '돼', Compose('ㄷ', 'ㅙ', 0))
	assert.Equal(t, '남', Compose('ㄴ', 'ㅏ', 'ㅁ'))
	assert.Equal(t, '스', Compose('ㅅ', 'ㅡ', 0))
}

func TestRoundTripAllSyllables(t *testing.T) {
	count := 0
	for r := rune(syllableBase); r <= syllableEnd; r++ {
		require.Equal(t, r, ComposeChar(Decompose(r)), "round trip of U+%04X", r)
		count++
	}
	assert.Equal(t, 11172, count)
}

func TestCodaIsEmpty(t *testing.T) {
	assert.True(t, Decompose('나').CodaIsEmpty())
	assert.False(t, Decompose('낳').CodaIsEmpty())
}

func TestRanges(t *testing.T) {
	assert.True(t, IsSyllable('가'))
	assert.True(t, IsSyllable('힣'))
	assert.False(t, IsSyllable('ㅋ'))
	assert.True(t, IsJamo('ㄱ'))
	assert.True(t, IsJamo('ㅣ'))
	assert.True(t, IsJamo('ㅠ'))
	assert.False(t, IsJamo('a'))
	assert.True(t, IsKorean('ㅋ'))
	assert.False(t, IsKorean('A'))
}

func TestIsCodaJamo(t *testing.T) {
	for _, r := range []rune{'ㄱ', 'ㄴ', 'ㅁ', 'ㅇ', 'ㅎ'} {
		assert.True(t, IsCodaJamo(r), "%q", r)
	}
	for _, r := range []rune{'ㄸ', 'ㅃ', 'ㅉ', 'ㅏ', 0} {
		assert.False(t, IsCodaJamo(r), "%q", r)
	}
}

func TestDecomposePanicsOnNonSyllable(t *testing.T) {
	assert.Panics(t, func() { Decompose('ㅋ') })
	assert.Panics(t, func() { Decompose('a') })
}

func TestComposePanicsOnInvalidJamo(t *testing.T) {
	assert.Panics(t, func() { Compose('ㅏ', 'ㅏ', 0) })
	assert.Panics(t, func() { Compose('ㄱ', 'ㄱ', 0) })
	assert.Panics(t, func() { Compose('ㄱ', 'ㅏ', 'ㄸ') })
}
