// Command konorm-cli pipes stdin (or a file) through konorm.Normalize
// and prints the normalized text, or the rewrite report with --json.
//
// Usage:
//
//	echo "안됔ㅋㅋㅋㅋ" | konorm-cli
//	konorm-cli -f chat.txt --json
//	konorm-cli -f chat.txt --lines --dict-db dict.db
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/Alfex4936/konorm/internal/dictionary"
	"github.com/Alfex4936/konorm/internal/logger"
	"github.com/Alfex4936/konorm/internal/model"
	"github.com/Alfex4936/konorm/internal/tokenizer"
	"github.com/Alfex4936/konorm/internal/util"
	"github.com/Alfex4936/konorm/konorm"
)

func main() {
	if err := mainE(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "konorm-cli:", err)
		os.Exit(1)
	}
}

func mainE(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("konorm-cli")
	var (
		file     = fs.String('f', "file", "", "file to read instead of stdin")
		userDict = fs.String('d', "dict", "", "user dictionary JSON file (optional)")
		dictDB   = fs.StringLong("dict-db", "", "SQLite dictionary built by konorm-dictgen")
		manifest = fs.StringLong("manifest", "", "dictionary manifest YAML")
		asJSON   = fs.BoolLong("json", "print the rewrite report as JSON")
		lines    = fs.BoolLong("lines", "normalize line by line in parallel")
		nfc      = fs.BoolLong("nfc", "compose input to NFC first")
		timeout  = fs.Duration('t', "timeout", 30*time.Second, "overall timeout")
		logLevel = fs.StringLong("log-level", "warn", "debug | info | warn | error")
		_        = fs.StringLong("config", "", "config file (flag value per line)")
	)

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("KONORM"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New(stderr, os.Getenv("LOG_FORMAT"), *logLevel)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	src := dictionary.Source{DB: *dictDB, Manifest: *manifest}
	dict, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}
	log.Debug("dictionary loaded", "source", src.String(), "nouns", dict.Len(model.Noun))

	opts := []konorm.Option{konorm.WithLogger(log)}
	if *nfc {
		opts = append(opts, konorm.WithNFC())
	}
	// 사용자 딕셔너리 로드 (선택)
	if *userDict != "" {
		d, err := konorm.LoadDict(*userDict)
		if err != nil {
			return fmt.Errorf("loading user dictionary: %w", err)
		}
		opts = append(opts, konorm.WithUserDict(d))
	}
	n := konorm.New(dict, tokenizer.New(dict), opts...)

	var r io.Reader = stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	if *lines {
		return normalizeLines(ctx, log, n, r, stdout, *asJSON)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	text := string(data)

	if *asJSON {
		out, err := util.MarshalNoEscape(n.Explain(text), true)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	}

	out, err := n.NormalizeParallel(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(stdout)
	}
	return nil
}

// normalizeLines treats every input line as its own text. With asJSON each
// line's report is written as one NDJSON record.
func normalizeLines(ctx context.Context, log *slog.Logger, n *konorm.Normalizer, r io.Reader, w io.Writer, asJSON bool) error {
	var texts []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		texts = append(texts, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	bw := bufio.NewWriter(w)

	if asJSON {
		for _, t := range texts {
			if err := util.WriteJSON(bw, n.Explain(t), false); err != nil {
				return err
			}
		}
		return bw.Flush()
	}

	out, err := n.NormalizeAll(ctx, texts)
	if err != nil {
		return err
	}
	log.Debug("normalized lines", "count", len(out))
	for _, line := range out {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}
