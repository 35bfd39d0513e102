package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/obt-cli/internal/table"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	input      TEXT NOT NULL,
	final_rows INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

CREATE TABLE IF NOT EXISTS run_sources (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	source    TEXT NOT NULL,
	raw_rows  INTEGER NOT NULL,
	kept_rows INTEGER NOT NULL,
	loss_pct  REAL NOT NULL,
	PRIMARY KEY (run_id, source)
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTable drops and recreates table name with one TEXT column per column
// of t. Absent values are stored as NULL.
func (s *SQLiteStore) SaveTable(ctx context.Context, name string, t *table.Table) error {
	cols := t.Columns()
	if len(cols) == 0 {
		return eris.Errorf("sqlite: table %s has no columns", name)
	}
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c) + " TEXT"
		marks[i] = "?"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return eris.Wrapf(err, "sqlite: drop %s", name)
	}
	ddl := "CREATE TABLE " + quoteIdent(name) + " (" + strings.Join(quoted, ", ") + ")"
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return eris.Wrapf(err, "sqlite: create %s", name)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO "+quoteIdent(name)+" VALUES ("+strings.Join(marks, ", ")+")")
	if err != nil {
		return eris.Wrapf(err, "sqlite: prepare insert %s", name)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for r, row := range t.Rows {
		for i, v := range row {
			if v.Valid() {
				args[i] = v.String()
			} else {
				args[i] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return eris.Wrapf(err, "sqlite: insert %s row %d", name, r)
		}
	}

	return eris.Wrapf(tx.Commit(), "sqlite: commit %s", name)
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, input, final_rows, created_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Input, run.FinalRows, run.CreatedAt,
	); err != nil {
		return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
	}
	for _, src := range run.Sources {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_sources (run_id, source, raw_rows, kept_rows, loss_pct) VALUES (?, ?, ?, ?, ?)`,
			run.ID, src.Name, src.RawRows, src.KeptRows, src.LossPct,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert run %s source %s", run.ID, src.Name)
		}
	}

	return eris.Wrapf(tx.Commit(), "sqlite: commit run %s", run.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, input, final_rows, created_at FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.Input, &run.FinalRows, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, raw_rows, kept_rows, loss_pct FROM run_sources WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s sources", id)
	}
	defer rows.Close()

	for rows.Next() {
		var src RunSource
		if err := rows.Scan(&src.Name, &src.RawRows, &src.KeptRows, &src.LossPct); err != nil {
			return nil, eris.Wrapf(err, "sqlite: scan run %s source", id)
		}
		run.Sources = append(run.Sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "sqlite: iterate run %s sources", id)
	}
	return &run, nil
}

// ListRuns returns the most recent runs first, without their sources.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, final_rows, created_at FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Input, &run.FinalRows, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return runs, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
