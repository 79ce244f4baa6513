package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
)

// SQLiteCache is a SQLite implementation of the core.DocumentCache
// interface. It survives process restarts, which matters when a run is
// re-executed after a crash inside the link-expiry window.
type SQLiteCache struct {
	db     *sql.DB
	ttl    time.Duration
	logger *zap.Logger
}

// NewSQLiteCache creates a new SQLite document cache
func NewSQLiteCache(dbPath string, ttl time.Duration, logger *zap.Logger) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			source_url TEXT PRIMARY KEY,
			title TEXT,
			content BLOB,
			fetched_at TIMESTAMP,
			expires_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_documents_expires_at ON documents(expires_at)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteCache{db: db, ttl: ttl, logger: logger}, nil
}

// Get retrieves a cached document by source URL
func (c *SQLiteCache) Get(ctx context.Context, url string) (*core.DocumentBytes, bool) {
	var title string
	var content []byte
	err := c.db.QueryRowContext(ctx, `
		SELECT title, content
		FROM documents
		WHERE source_url = ? AND expires_at > ?
	`, url, time.Now().UTC()).Scan(&title, &content)
	if err != nil {
		if err != sql.ErrNoRows {
			c.logger.Error("failed to query document cache", zap.Error(err), zap.String("url", url))
		}
		return nil, false
	}
	return &core.DocumentBytes{Content: content, SourceURL: url, Title: title}, true
}

// Put stores a downloaded document
func (c *SQLiteCache) Put(ctx context.Context, doc *core.DocumentBytes) error {
	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (source_url, title, content, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at
	`, doc.SourceURL, doc.Title, doc.Content, now, now.Add(c.ttl))
	if err != nil {
		return fmt.Errorf("failed to cache document: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *SQLiteCache) Cleanup(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to clean up document cache: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
