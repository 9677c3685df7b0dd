package ddragon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache stores Data Dragon dumps on disk. A dump never changes once its
// version is published, so entries are kept forever.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.init(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	schema := `
		CREATE TABLE IF NOT EXISTS dumps (
			version TEXT NOT NULL,
			dataset TEXT NOT NULL,
			body BLOB NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (version, dataset)
		);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cache schema: %w", err)
	}
	return nil
}

// Get returns the cached dump, if any.
func (c *Cache) Get(ctx context.Context, version, dataset string) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT body FROM dumps WHERE version = ? AND dataset = ?`,
		version, dataset,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s/%s from cache: %w", version, dataset, err)
	}
	return body, true, nil
}

// Put stores a dump.
func (c *Cache) Put(ctx context.Context, version, dataset string, body []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO dumps (version, dataset, body, fetched_at) VALUES (?, ?, ?, ?)`,
		version, dataset, body, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s/%s to cache: %w", version, dataset, err)
	}
	return nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
