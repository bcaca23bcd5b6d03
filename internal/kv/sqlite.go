package kv

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const (
	dbFile = "vibrant.db"

	// SchemaVersion is the current kv schema version
	SchemaVersion = 1
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLite is a Store backed by a single sqlite table
type SQLite struct {
	conn    *sql.DB
	dataDir string
}

// DBPath returns the database file location for dataDir
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, dbFile)
}

// OpenSQLite opens (creating if needed) the database under dataDir
func OpenSQLite(dataDir string) (*SQLite, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	conn, err := sql.Open("sqlite", DBPath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers from blocking on the occasional writer
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Matches the write lock timeout
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	conn.Exec("PRAGMA synchronous=NORMAL")

	s := &SQLite{conn: conn, dataDir: dataDir}
	if err := s.withWriteLock(func() error {
		if _, err := conn.Exec(schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		_, err := conn.Exec(`INSERT OR IGNORE INTO schema_info (key, value) VALUES ('version', ?)`,
			strconv.Itoa(SchemaVersion))
		return err
	}); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

// SchemaVersion returns the schema version recorded in the database
func (s *SQLite) SchemaVersion() (int, error) {
	var version string
	err := s.conn.QueryRow(`SELECT value FROM schema_info WHERE key = 'version'`).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(version)
}

// Get implements Store
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	return s.withWriteLock(func() error {
		_, err := s.conn.ExecContext(ctx, `
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
		return nil
	})
}

// Delete implements Store
func (s *SQLite) Delete(ctx context.Context, key string) error {
	return s.withWriteLock(func() error {
		_, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
		return err
	})
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// withWriteLock executes fn while holding the cross-process write lock
func (s *SQLite) withWriteLock(fn func() error) error {
	locker := newWriteLocker(s.dataDir)
	if err := locker.acquire(defaultTimeout); err != nil {
		return err
	}
	defer locker.release()
	return fn()
}
