package storage

import (
	"database/sql"
	_ "embed"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// SQLite is the on-disk backend: a single key/value table in a sqlite
// file. Writes are upserts, so repeated persistence of the same record
// is last-write-wins.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and initializes
// the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Read(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *SQLite) Write(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *SQLite) Clear() error {
	_, err := s.db.Exec("DELETE FROM records")
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
