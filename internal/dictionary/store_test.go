package dictionary

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/konorm/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := New()
	d.Add(model.Noun, "버스", "보스")
	d.Add(model.Eomi, "다")
	d.AddTypos(map[string]string{"하겟다": "하겠다"})
	require.NoError(t, s.Save(ctx, d))

	// saving twice keeps rows unique
	require.NoError(t, s.Save(ctx, d))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"버스", "보스"}, got.Words(model.Noun))
	assert.True(t, got.Contains(model.Eomi, "다"))
	assert.Equal(t, map[string]string{"하겟다": "하겠다"}, got.Typos())

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Noun": 2, "Eomi": 1}, counts)
}

func TestStoreTypoUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := New()
	d.AddTypos(map[string]string{"머굼": "머금"})
	require.NoError(t, s.Save(ctx, d))

	d.AddTypos(map[string]string{"머굼": "먹음"})
	require.NoError(t, s.Save(ctx, d))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "먹음", got.Typos()["머굼"])
}

func TestStoreFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dict.db")

	s, err := OpenStore(ctx, "sqlite://"+path)
	require.NoError(t, err)
	d, err := Default()
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, d))
	require.NoError(t, s.Close())

	s, err = OpenStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, d.Words(model.Noun), got.Words(model.Noun))
	assert.Equal(t, d.Typos(), got.Typos())
}
