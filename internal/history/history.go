// apps/term/internal/history/history.go
//
// SQLite-backed log of finished rounds.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations in sql/*.sql (idempotent, recorded in _migrations).
//   - Recording finished rounds and listing the most recent ones.
//
// History is optional: the CLI only opens it when a database path is configured.

package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

//go:embed sql/*.sql
var migrations embed.FS

// timeLayout is fixed width so that finished_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one finished round as stored in the rounds table.
type Entry struct {
	ID         string
	Answer     string
	Guesses    []string
	Attempts   int
	Won        bool
	Mode       string // "random" | "daily" | "http"
	FinishedAt time.Time
}

// Store records rounds in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the SQLite database at dsn and applies
// migrations.
func Open(dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// migrate applies embedded migrations in lexical order, each inside its own
// transaction, skipping files already listed in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Record stores a finished round. Unfinished rounds are rejected.
func (s *Store) Record(ctx context.Context, r *game.Round, mode string) error {
	if !r.Finished() {
		return fmt.Errorf("history: round %s is not finished", r.ID)
	}
	guesses := make([]string, 0, len(r.Turns))
	for _, t := range r.Turns {
		guesses = append(guesses, t.Guess)
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO rounds (id, answer, guesses, attempts, won, mode, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Answer, strings.Join(guesses, ","), r.Attempts(), r.State == game.StateWon, mode,
		time.Now().UTC().Format(timeLayout),
	)
	return err
}

// Recent returns up to limit rounds, newest first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, answer, guesses, attempts, won, mode, finished_at
        FROM rounds
        ORDER BY finished_at DESC, rowid DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var guesses, finished string
		if err := rows.Scan(&e.ID, &e.Answer, &guesses, &e.Attempts, &e.Won, &e.Mode, &finished); err != nil {
			return nil, err
		}
		if guesses != "" {
			e.Guesses = strings.Split(guesses, ",")
		}
		e.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, e)
	}
	return out, rows.Err()
}
