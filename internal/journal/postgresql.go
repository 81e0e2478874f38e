package journal

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type postgresRecorder struct {
	db    *sql.DB
	table string
}

func openPostgres(cfg PostgresConfig, table string) (Recorder, error) {
	dsn := cfg.ResolveDSN()
	if dsn == "" {
		return nil, errors.New("journal: postgres dsn or host is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open postgres: %w", err)
	}
	r := &postgresRecorder{db: db, table: table}
	if err := r.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *postgresRecorder) ensureSchema() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id SERIAL PRIMARY KEY,
		scenario TEXT NOT NULL,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		duration_ms BIGINT NOT NULL,
		failed BOOLEAN NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		ran_at TEXT NOT NULL
	)`, r.table)
	_, err := r.db.Exec(stmt)
	if err != nil {
		return fmt.Errorf("journal: ensure postgres schema: %w", err)
	}
	return nil
}

func (r *postgresRecorder) Record(e Entry) error {
	if e.RanAt == "" {
		e.RanAt = nowRFC3339()
	}
	stmt := fmt.Sprintf(`INSERT INTO %s(scenario, method, url, status_code, duration_ms, failed, error, ran_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)`, r.table)
	_, err := r.db.Exec(stmt, e.Scenario, e.Method, e.URL, e.StatusCode, e.DurationMS, e.Failed, e.Error, e.RanAt)
	if err != nil {
		return fmt.Errorf("journal: record: %w", err)
	}
	return nil
}

func (r *postgresRecorder) List() ([]Entry, error) {
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
		if err := rows.Scan(&e.ID, &e.Scenario, &e.Method, &e.URL, &e.StatusCode, &e.DurationMS, &e.Failed, &e.Error, &e.RanAt); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *postgresRecorder) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
