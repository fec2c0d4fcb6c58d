package dictionary

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Alfex4936/konorm/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Store persists a Dictionary in a SQLite database, so large word lists are
// parsed once by konorm-dictgen instead of on every start.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at dbPath.
// ":memory:" gives a private in-memory database.
func OpenStore(ctx context.Context, dbPath string) (*Store, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes every word and typo of d in one transaction.
// Existing rows are kept; duplicates are ignored.
func (s *Store) Save(ctx context.Context, d *Dictionary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	wordStmt, err := tx.PrepareContext(ctx, `INSERT INTO words (pos, word) VALUES (?, ?) ON CONFLICT DO NOTHING`)
	if err != nil {
		return fmt.Errorf("preparing word insert: %w", err)
	}
	defer wordStmt.Close()

	for _, pos := range d.POS() {
		for _, w := range d.Words(pos) {
			if _, err := wordStmt.ExecContext(ctx, pos.String(), w); err != nil {
				return fmt.Errorf("inserting %s %q: %w", pos, w, err)
			}
		}
	}

	typoStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO typos (misspelling, canonical) VALUES (?, ?)
		ON CONFLICT (misspelling) DO UPDATE SET canonical = excluded.canonical
	`)
	if err != nil {
		return fmt.Errorf("preparing typo insert: %w", err)
	}
	defer typoStmt.Close()

	for k, v := range d.Typos() {
		if _, err := typoStmt.ExecContext(ctx, k, v); err != nil {
			return fmt.Errorf("inserting typo %q: %w", k, err)
		}
	}
	return tx.Commit()
}

// Load reads the whole database into a new Dictionary.
func (s *Store) Load(ctx context.Context) (*Dictionary, error) {
	byPOS, err := s.loadWords(ctx)
	if err != nil {
		return nil, err
	}
	typos, err := s.loadTypos(ctx)
	if err != nil {
		return nil, err
	}

	d := New()
	for pos, words := range byPOS {
		d.Add(pos, words...)
	}
	d.AddTypos(typos)
	return d, nil
}

func (s *Store) loadWords(ctx context.Context) (map[model.POS][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pos, word FROM words`)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	byPOS := make(map[model.POS][]string)
	for rows.Next() {
		var posName, word string
		if err := rows.Scan(&posName, &word); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		pos, ok := model.ParsePOS(posName)
		if !ok {
			return nil, fmt.Errorf("%q: %w", posName, ErrUnknownPOS)
		}
		byPOS[pos] = append(byPOS[pos], word)
	}
	return byPOS, rows.Err()
}

func (s *Store) loadTypos(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT misspelling, canonical FROM typos`)
	if err != nil {
		return nil, fmt.Errorf("querying typos: %w", err)
	}
	defer rows.Close()

	typos := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning typo: %w", err)
		}
		typos[k] = v
	}
	return typos, rows.Err()
}

// Counts returns the number of stored words per POS name.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pos, COUNT(*) FROM words GROUP BY pos`)
	if err != nil {
		return nil, fmt.Errorf("counting words: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var pos string
		var n int
		if err := rows.Scan(&pos, &n); err != nil {
			return nil, err
		}
		counts[pos] = n
	}
	return counts, rows.Err()
}
