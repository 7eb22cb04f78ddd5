package model

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Cache persists a parsed Train table set keyed by its source directory,
// so repeated runs against the same training data skip re-parsing the
// flat-file tables.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a DuckDB database at path for the train
// table cache.
func OpenCache(path string) (*Cache, error) {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create train-cache directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open train-cache: %w", err)
	}

	c := &Cache{db: db}
	if err := c.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure train-cache schema: %w", err)
	}
	return c, nil
}

// Close releases the underlying DuckDB connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) ensureSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS train_tables (
		source_dir VARCHAR PRIMARY KEY,
		payload BLOB
	)`)
	return err
}

// Get returns the cached Train/GlobalParams for sourceDir, or ok=false if
// nothing is cached yet.
func (c *Cache) Get(sourceDir string) (*Train, GlobalParams, bool, error) {
	var payload []byte
	err := c.db.QueryRow(`SELECT payload FROM train_tables WHERE source_dir = ?`, sourceDir).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, GlobalParams{}, false, nil
	}
	if err != nil {
		return nil, GlobalParams{}, false, fmt.Errorf("query train-cache: %w", err)
	}

	var entry cacheEntry
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&entry); err != nil {
		return nil, GlobalParams{}, false, fmt.Errorf("decode train-cache entry: %w", err)
	}
	return &entry.Train, entry.Global, true, nil
}

// Put stores train/global under sourceDir, replacing any prior entry.
func (c *Cache) Put(sourceDir string, train *Train, global GlobalParams) error {
	var buf bytes.Buffer
	entry := cacheEntry{Train: *train, Global: global}
	if err := gob.NewEncoder(&buf).Encode(entry); err != nil {
		return fmt.Errorf("encode train-cache entry: %w", err)
	}

	_, err := c.db.Exec(`INSERT OR REPLACE INTO train_tables (source_dir, payload) VALUES (?, ?)`, sourceDir, buf.Bytes())
	if err != nil {
		return fmt.Errorf("store train-cache entry: %w", err)
	}
	return nil
}

type cacheEntry struct {
	Train  Train
	Global GlobalParams
}
