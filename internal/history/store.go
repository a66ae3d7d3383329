// Package history keeps a transcript of evaluations in a SQL database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

var schema = map[string]string{
	DriverSQLite: `CREATE TABLE IF NOT EXISTS evaluations (
	id         TEXT PRIMARY KEY,
	session    TEXT NOT NULL,
	source     TEXT NOT NULL,
	result     TEXT NOT NULL,
	error      TEXT NOT NULL,
	backend    TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`,
	DriverMySQL: `CREATE TABLE IF NOT EXISTS evaluations (
	id         VARCHAR(36) PRIMARY KEY,
	session    VARCHAR(36) NOT NULL,
	source     TEXT NOT NULL,
	result     TEXT NOT NULL,
	error      TEXT NOT NULL,
	backend    VARCHAR(16) NOT NULL,
	created_at BIGINT NOT NULL,
	INDEX evaluations_session (session, created_at)
)`,
}

// Entry is one recorded evaluation. Exactly one of Result and Error is
// normally set.
type Entry struct {
	ID        string
	Session   string
	Source    string
	Result    string
	Error     string
	Backend   string
	CreatedAt time.Time
}

type Store struct {
	db     *sql.DB
	driver string

	mu   sync.Mutex
	last int64
}

// Open connects to the database and creates the evaluations table if needed.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	ddl, ok := schema[driver]
	if !ok {
		return nil, fmt.Errorf("history: unsupported driver %q", driver)
	}
	if driver == DriverMySQL {
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return nil, fmt.Errorf("history: bad mysql dsn: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// an in-memory database exists per connection
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: connect %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create table: %w", err)
	}
	slog.Debug("history store opened", slog.String("driver", driver))
	return &Store{db: db, driver: driver}, nil
}

// NewSession returns a fresh session id.
func NewSession() string {
	return uuid.NewString()
}

// Record inserts e, filling in ID and CreatedAt when unset.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	stamp := s.stamp(e.CreatedAt)
	e.CreatedAt = time.Unix(0, stamp)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, session, source, result, error, backend, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Session, e.Source, e.Result, e.Error, e.Backend, stamp)
	if err != nil {
		return Entry{}, fmt.Errorf("history: record: %w", err)
	}
	return e, nil
}

// stamp keeps timestamps strictly increasing so ordering is stable.
func (s *Store) stamp(t time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := t.UnixNano()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return n
}

// Recent returns up to n entries of session, newest first.
func (s *Store) Recent(ctx context.Context, session string, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, source, result, error, backend, created_at FROM evaluations
		 WHERE session = ? ORDER BY created_at DESC LIMIT ?`,
		session, n)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var stamp int64
		if err := rows.Scan(&e.ID, &e.Session, &e.Source, &e.Result, &e.Error, &e.Backend, &stamp); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.CreatedAt = time.Unix(0, stamp)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Close() error {
	return s.db.Close()
}
