package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/mhyeon/stepsuite/internal/constants"
)

// Supported driver keys.
const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

// Entry is one executed call as recorded in the journal.
type Entry struct {
	ID         int
	Scenario   string
	Method     string
	URL        string
	StatusCode int
	DurationMS int64
	Failed     bool
	Error      string
	RanAt      string
}

// Recorder persists call entries for later inspection. Implementations
// are not required to be safe for concurrent use; the harness records
// from a single goroutine per run.
type Recorder interface {
	Record(e Entry) error
	List() ([]Entry, error)
	Close() error
}

// SQLiteConfig configures the sqlite driver. An explicit DSN wins over Path.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
	DSN  string `mapstructure:"dsn"`
}

// PostgresConfig configures the postgres driver. An explicit DSN wins over
// the discrete fields.
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ResolveDSN returns the effective postgres DSN in the form accepted by
// the pgx stdlib driver.
func (p PostgresConfig) ResolveDSN() string {
	if dsn := strings.TrimSpace(p.DSN); dsn != "" {
		return dsn
	}
	host := strings.TrimSpace(p.Host)
	if host == "" {
		return ""
	}
	port := p.Port
	if port == 0 {
		port = constants.DefaultPostgresPort
	}
	ssl := strings.TrimSpace(p.SSLMode)
	if ssl == "" {
		ssl = constants.DefaultPostgresSSLMode
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		strings.TrimSpace(p.User), strings.TrimSpace(p.Password), host, port, strings.TrimSpace(p.DBName), ssl)
}

// Config selects and configures the journal backend.
type Config struct {
	Disabled bool           `mapstructure:"disabled"`
	Driver   string         `mapstructure:"driver"`
	Table    string         `mapstructure:"table"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// TableName returns the configured journal table, defaulting to call_journal.
func (c Config) TableName() string {
	if t := strings.TrimSpace(c.Table); t != "" {
		return t
	}
	return constants.DefaultJournalTable
}

// Open connects the configured backend and ensures its schema exists.
// A disabled config yields a nil Recorder and no error.
func (c Config) Open() (Recorder, error) {
	if c.Disabled {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "", DriverSqlite:
		return openSqlite(c.SQLite, c.TableName())
	case DriverPostgres, "postgresql":
		return openPostgres(c.Postgres, c.TableName())
	default:
		return nil, fmt.Errorf("journal: unsupported driver: %s", c.Driver)
	}
}

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }
