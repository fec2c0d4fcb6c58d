package dictionary

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Alfex4936/konorm/internal/model"
)

//go:embed data/manifest.yaml data/*.txt data/*.txt.gz
var seedFS embed.FS

const seedManifest = "data/manifest.yaml"

// Manifest lists the word files of a dictionary, keyed by POS name
// (Noun, Eomi, ...). Paths are relative to the manifest's directory.
type Manifest struct {
	Words map[string][]string `yaml:"words"`
	Typos []string            `yaml:"typos,omitempty"`
}

// ParseManifest decodes a YAML manifest and validates its POS names.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	for name := range m.Words {
		if _, ok := model.ParsePOS(name); !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownPOS)
		}
	}
	return &m, nil
}

// Default returns a fresh copy of the embedded seed dictionary.
func Default() (*Dictionary, error) {
	return LoadFS(context.Background(), seedFS, seedManifest)
}

// LoadManifest loads the manifest at path and every file it names.
func LoadManifest(ctx context.Context, path string) (*Dictionary, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return LoadFS(ctx, os.DirFS(dir), name)
}

// LoadFS loads the manifest called name from fsys. Files are read
// concurrently; the first failure cancels the rest. Typo files are merged in
// manifest order, so a later file wins on a shared misspelling.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (*Dictionary, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	base := path.Dir(name)

	d := New()
	typos := make([]map[string]string, len(m.Typos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, posName := range sortedKeys(m.Words) {
		pos, _ := model.ParsePOS(posName)
		for _, file := range m.Words[posName] {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				words, err := readWordsFile(fsys, path.Join(base, file))
				if err != nil {
					return fmt.Errorf("loading %s words: %w", pos, err)
				}
				d.Add(pos, words...)
				return nil
			})
		}
	}
	for i, file := range m.Typos {
		g.Go(func() error {
			t, err := readTyposFile(fsys, path.Join(base, file))
			if err != nil {
				return fmt.Errorf("loading typos: %w", err)
			}
			typos[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// later typo files override earlier ones
	for _, t := range typos {
		d.AddTypos(t)
	}
	return d, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
