package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/konorm/internal/dictionary"
	"github.com/Alfex4936/konorm/internal/model"
)

func TestDictgenRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dict.db")
	require.NoError(t, mainE([]string{"--out", out}))

	ctx := context.Background()
	d, err := dictionary.Source{DB: out}.Load(ctx)
	require.NoError(t, err)

	seed, err := dictionary.Default()
	require.NoError(t, err)
	for _, pos := range seed.POS() {
		assert.Equal(t, seed.Words(pos), d.Words(pos), pos.String())
	}
	assert.Equal(t, seed.Typos(), d.Typos())
	assert.True(t, d.Contains(model.Noun, "버스"))
}

func TestDictgenBadManifest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dict.db")
	require.Error(t, mainE([]string{"--manifest", "/no/such/manifest.yaml", "--out", out}))
}
