// Command konorm-server exposes the normalizer over HTTP.
//
// Usage:
//
//	konorm-server --port 8080
//	konorm-server --port 8080 --dict-db dict.db --cache-size 8192
//	KONORM_MANIFEST=./dict/manifest.yaml konorm-server
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/Alfex4936/konorm/internal/dictionary"
	"github.com/Alfex4936/konorm/internal/logger"
	"github.com/Alfex4936/konorm/internal/metrics"
	"github.com/Alfex4936/konorm/internal/tokenizer"
	"github.com/Alfex4936/konorm/konorm"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("konorm-server")
	var (
		port      = fs.Int64Long("port", 8080, "HTTP server port")
		dictDB    = fs.StringLong("dict-db", "", "SQLite dictionary built by konorm-dictgen")
		manifest  = fs.StringLong("manifest", "", "dictionary manifest YAML")
		userDict  = fs.StringLong("user-dict", "", "user dictionary JSON applied to every request")
		cacheSize = fs.IntLong("cache-size", 4096, "normalization LRU size (0 disables)")
		maxBytes  = fs.Int64Long("max-bytes", 1<<20, "maximum request body size")
		timeout   = fs.DurationLong("timeout", 5*time.Second, "default per-request timeout")
		nfc       = fs.BoolLong("nfc", "compose input to NFC first")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("KONORM")); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := dictionary.Source{DB: *dictDB, Manifest: *manifest}
	dict, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}
	for _, pos := range dict.POS() {
		metrics.DictionaryWords.WithLabelValues(pos.String()).Set(float64(dict.Len(pos)))
	}
	log.InfoContext(ctx, "dictionary loaded", "source", src.String(), "max_word_len", dict.MaxWordLen())

	opts := []konorm.Option{
		konorm.WithLogger(log),
		konorm.WithRuleHook(metrics.ObserveRule[konorm.Rule]),
	}
	if *nfc {
		opts = append(opts, konorm.WithNFC())
	}
	if *userDict != "" {
		d, err := konorm.LoadDict(*userDict)
		if err != nil {
			return fmt.Errorf("loading user dictionary: %w", err)
		}
		opts = append(opts, konorm.WithUserDict(d))
	}
	n := konorm.New(dict, tokenizer.New(dict), opts...)

	srvOpts := []konorm.ServerOption{
		konorm.WithServerLogger(log),
		konorm.WithMaxBytes(*maxBytes),
		konorm.WithDefaultTimeout(*timeout),
	}
	if *cacheSize > 0 {
		cache, err := konorm.NewCache(n, *cacheSize)
		if err != nil {
			return fmt.Errorf("creating cache: %w", err)
		}
		srvOpts = append(srvOpts, konorm.WithCache(cache))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           konorm.NewServer(n, srvOpts...).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      *timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("konorm server listening", "addr", srv.Addr)
		log.Info("routes", "normalize", "POST /v1/normalize", "batch", "POST /v1/normalize/batch", "docs", "GET /")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
