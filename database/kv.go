// database/kv.go - durable key-value storage
//
// The only state that survives a restart: the session token, the serialized
// session user, and the UI theme. Everything else lives in memory behind the
// mock backend.
package database

import (
	"database/sql"
	"errors"
	"log"

	_ "modernc.org/sqlite"
)

var ErrKeyNotFound = errors.New("key not found")

const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyTheme = "theme"
)

type KV struct {
	db *sql.DB
}

// Open opens (and if needed creates) the kv database at path.
func Open(path string) (*KV, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &KV{db: db}, nil
}

// MustOpen is Open for main: dies on failure.
func MustOpen(path string) *KV {
	kv, err := Open(path)
	if err != nil {
		log.Fatalf("Failed to open kv database: %v", err)
	}
	return kv
}

func (kv *KV) Get(key string) (string, error) {
	var value string
	err := kv.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (kv *KV) Put(key, value string) error {
	_, err := kv.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (kv *KV) Delete(key string) error {
	_, err := kv.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (kv *KV) Close() error {
	return kv.db.Close()
}
