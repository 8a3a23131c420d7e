package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "modernc.org/sqlite"

	"svw.info/mathtiles/internal/evaluator"
)

const schema = `
CREATE TABLE IF NOT EXISTS solutions (
	k      INTEGER NOT NULL,
	target INTEGER NOT NULL,
	seq    INTEGER NOT NULL,
	line   TEXT    NOT NULL,
	PRIMARY KEY (k, target, seq)
);
CREATE INDEX IF NOT EXISTS idx_solutions_k ON solutions(k);
`

// SQLiteStore serves the corpus from an SQLite database, so a large corpus
// can live outside the binary and be shared between processes. It satisfies
// the same Index contract as FSIndex.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the corpus database at path with
// the production pragmas applied. Use ":memory:" in tests.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("corpus: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("corpus: schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("corpus: ping: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// DB exposes the handle so sibling stores (play history) can share it.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// ImportFS loads every <k>/<target>.txt under fsys into the solutions
// table, validating each line's literal count on the way in. Existing rows
// for a (k, target) are replaced wholesale, so re-import is idempotent.
func (s *SQLiteStore) ImportFS(ctx context.Context, fsys fs.FS) error {
	src := NewFSIndex(fsys)
	ks, err := tileCounts(fsys)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("corpus: import begin: %w", err)
	}
	defer tx.Rollback()

	for _, k := range ks {
		targets, err := src.TargetsFor(ctx, k)
		if err != nil {
			return err
		}
		for _, target := range targets {
			lines, err := src.SolutionsFor(ctx, k, target)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM solutions WHERE k = ? AND target = ?", k, target); err != nil {
				return fmt.Errorf("corpus: import clear k=%d target=%d: %w", k, target, err)
			}
			for seq, line := range lines {
				if _, err := evaluator.Literals(line, k); err != nil {
					return fmt.Errorf("corpus: import k=%d target=%d: %w", k, target, err)
				}
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO solutions (k, target, seq, line) VALUES (?,?,?,?)",
					k, target, seq, line); err != nil {
					return fmt.Errorf("corpus: import insert: %w", err)
				}
			}
		}
	}
	return tx.Commit()
}

// TargetsFor returns the distinct targets recorded for k, ascending.
func (s *SQLiteStore) TargetsFor(ctx context.Context, k int) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT target FROM solutions WHERE k = ? ORDER BY target", k)
	if err != nil {
		return nil, fmt.Errorf("corpus: targets k=%d: %w", k, err)
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var t int
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SolutionsFor returns the stored lines for (k, target) in import order.
func (s *SQLiteStore) SolutionsFor(ctx context.Context, k, target int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT line FROM solutions WHERE k = ? AND target = ? ORDER BY seq", k, target)
	if err != nil {
		return nil, fmt.Errorf("corpus: solutions k=%d target=%d: %w", k, target, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: k=%d target=%d", ErrCorpusMissing, k, target)
	}
	return out, nil
}

func tileCounts(fsys fs.FS) ([]int, error) {
	ents, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("corpus: scan: %w", err)
	}
	var ks []int
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		var k int
		if _, err := fmt.Sscanf(e.Name(), "%d", &k); err == nil && k >= 2 {
			ks = append(ks, k)
		}
	}
	return ks, nil
}
