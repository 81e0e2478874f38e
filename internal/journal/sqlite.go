package journal

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mhyeon/stepsuite/internal/constants"
	_ "modernc.org/sqlite"
)

type sqliteRecorder struct {
	db    *sql.DB
	table string
}

func openSqlite(cfg SQLiteConfig, table string) (Recorder, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = constants.DefaultJournalFileName
		}
		dsn = fmt.Sprintf("file:%s?_busy_timeout=%d&_fk=1", path, constants.DefaultSQLiteBusyMS)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open sqlite: %w", err)
	}
	// SQLite allows only one writer.
	db.SetMaxOpenConns(1)
	r := &sqliteRecorder{db: db, table: table}
	if err := r.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *sqliteRecorder) ensureSchema() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario TEXT NOT NULL,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		ran_at TEXT NOT NULL
	)`, r.table)
	_, err := r.db.Exec(stmt)
	if err != nil {
		return fmt.Errorf("journal: ensure sqlite schema: %w", err)
	}
	return nil
}

func (r *sqliteRecorder) Record(e Entry) error {
	if e.RanAt == "" {
		e.RanAt = nowRFC3339()
	}
	failed := 0
	if e.Failed {
		failed = 1
	}
	stmt := fmt.Sprintf(`INSERT INTO %s(scenario, method, url, status_code, duration_ms, failed, error, ran_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`, r.table)
	_, err := r.db.Exec(stmt, e.Scenario, e.Method, e.URL, e.StatusCode, e.DurationMS, failed, e.Error, e.RanAt)
	if err != nil {
		return fmt.Errorf("journal: record: %w", err)
	}
	return nil
}

func (r *sqliteRecorder) List() ([]Entry, error) {
	stmt := fmt.Sprintf(`SELECT id, scenario, method, url, status_code, duration_ms, failed, error, ran_at
		FROM %s ORDER BY id`, r.table)
	rows, err := r.db.Query(stmt)
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var failed int
		if err := rows.Scan(&e.ID, &e.Scenario, &e.Method, &e.URL, &e.StatusCode, &e.DurationMS, &failed, &e.Error, &e.RanAt); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.Failed = failed != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *sqliteRecorder) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
