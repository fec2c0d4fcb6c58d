package dictionary

import (
	"context"
	"fmt"
)

// Source picks where a base dictionary comes from. DB wins over Manifest;
// with neither set the embedded seed is used.
type Source struct {
	DB       string // SQLite path written by konorm-dictgen
	Manifest string // YAML manifest path
}

func (s Source) String() string {
	switch {
	case s.DB != "":
		return "sqlite:" + s.DB
	case s.Manifest != "":
		return "manifest:" + s.Manifest
	}
	return "embedded"
}

// Load opens the dictionary s points at.
func (s Source) Load(ctx context.Context) (*Dictionary, error) {
	switch {
	case s.DB != "":
		st, err := OpenStore(ctx, s.DB)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		d, err := st.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading dictionary from %s: %w", s.DB, err)
		}
		return d, nil
	case s.Manifest != "":
		return LoadManifest(ctx, s.Manifest)
	}
	return Default()
}
