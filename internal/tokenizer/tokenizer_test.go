package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/konorm/internal/dictionary"
	"github.com/Alfex4936/konorm/internal/model"
)

func newTestTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	d, err := dictionary.Default()
	require.NoError(t, err)
	return New(d)
}

func TestTokenize(t *testing.T) {
	tok := newTestTokenizer(t)

	tests := []struct {
		name string
		in   string
		want []model.Token
	}{
		{
			name: "noun josa",
			in:   "심장을",
			want: []model.Token{
				{Text: "심장", POS: model.Noun, Offset: 0, Length: 2},
				{Text: "을", POS: model.Josa, Offset: 2, Length: 1},
			},
		},
		{
			name: "verb with ending",
			in:   "먹는데",
			want: []model.Token{{Text: "먹는데", POS: model.Verb, Offset: 0, Length: 3}},
		},
		{
			name: "pre-ending chain",
			in:   "먹었다",
			want: []model.Token{{Text: "먹었다", POS: model.Verb, Offset: 0, Length: 3}},
		},
		{
			name: "adjective",
			in:   "좋아요",
			want: []model.Token{{Text: "좋아요", POS: model.Adjective, Offset: 0, Length: 3}},
		},
		{
			name: "bare stem is not a predicate",
			in:   "보슨지",
			want: []model.Token{{Text: "보슨지", POS: model.Unknown, Offset: 0, Length: 3}},
		},
		{
			name: "unknown run then noun",
			in:   "쵸킨버스",
			want: []model.Token{
				{Text: "쵸킨", POS: model.Unknown, Offset: 0, Length: 2},
				{Text: "버스", POS: model.Noun, Offset: 2, Length: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Tokenize(tt.in))
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tok := newTestTokenizer(t)
	assert.Empty(t, tok.Tokenize(""))
}

func TestFirstTokenIsPredicate(t *testing.T) {
	tok := newTestTokenizer(t)

	toks := tok.Tokenize("비싸다")
	require.NotEmpty(t, toks)
	assert.True(t, toks[0].POS.IsPredicate())

	toks = tok.Tokenize("버슨가")
	require.NotEmpty(t, toks)
	assert.False(t, toks[0].POS.IsPredicate())
}
