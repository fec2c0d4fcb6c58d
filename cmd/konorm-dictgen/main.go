// Command konorm-dictgen compiles a dictionary manifest (or the embedded
// seed dictionary) into the SQLite file konorm-server and konorm-cli read
// with --dict-db.
//
//	konorm-dictgen --manifest ./dict/manifest.yaml --out dict.db
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/samber/lo"

	"github.com/Alfex4936/konorm/internal/dictionary"
	"github.com/Alfex4936/konorm/internal/logger"
)

func main() {
	if err := mainE(os.Args[1:]); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE(args []string) error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("konorm-dictgen")
	var (
		manifest = fs.StringLong("manifest", "", "manifest YAML (default: embedded seed dictionary)")
		out      = fs.String('o', "out", "konorm.db", "SQLite file to write")
		timeout  = fs.DurationLong("timeout", time.Minute, "overall timeout")
	)
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("KONORM")); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	src := dictionary.Source{Manifest: *manifest}
	dict, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading %s: %w", src, err)
	}

	store, err := dictionary.OpenStore(ctx, *out)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, dict); err != nil {
		return fmt.Errorf("saving: %w", err)
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		return err
	}
	log.Info("dictionary written", "source", src.String(), "out", *out,
		"words", lo.Sum(lo.Values(counts)), "typos", len(dict.Typos()), "per_pos", counts)
	return nil
}
