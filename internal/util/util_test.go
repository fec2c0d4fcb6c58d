package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"안돼", "안돼", 0},
		{"안됔", "안돼", 1},
		{"ㅋㅋㅋㅋㅋ", "ㅋㅋㅋ", 2},
		{"버슨가", "버스인가", 2},
		{"", "가나", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EditDistance(tt.a, tt.b), "EditDistance(%q, %q)", tt.a, tt.b)
	}
}

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"text": "<ㅋㅋ> & 안돼"}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"text":"<ㅋㅋ> & 안돼"}`, string(out))

	out, err = MarshalNoEscape([]int{1}, true)
	require.NoError(t, err)
	assert.Equal(t, "[\n  1\n]", string(out))
}

func TestWriteJSONKeepsNewline(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteJSON(&b, "ㅋㅋㅋ", false))
	assert.Equal(t, "\"ㅋㅋㅋ\"\n", b.String())
}
