package segmentcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"crawshaw.io/sqlite"
	"github.com/localrivet/lexsummary/internal/document"
)

// ErrNotInitialized is returned when the cache is used before Initialize.
var ErrNotInitialized = errors.New("segment cache not initialized")

// SQLiteCache is an implementation of Cache that uses SQLite.
// A single connection is shared and guarded by a mutex.
type SQLiteCache struct {
	conn       *sqlite.Conn
	dbPath     string
	maxEntries int
	mu         sync.Mutex
}

// NewSQLiteCache creates a new SQLiteCache holding at most maxEntries documents.
func NewSQLiteCache(maxEntries int) *SQLiteCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &SQLiteCache{maxEntries: maxEntries}
}

// Initialize opens the database at dbPath. An empty path means InMemoryPath.
func (c *SQLiteCache) Initialize(dbPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dbPath == "" {
		dbPath = InMemoryPath
	}
	c.dbPath = dbPath

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	c.conn = conn

	if err := c.exec(`
	CREATE TABLE IF NOT EXISTS segment_cache (
		cache_key TEXT PRIMARY KEY,
		sentences BLOB NOT NULL,
		created_at INTEGER NOT NULL
	);`); err != nil {
		c.conn.Close()
		c.conn = nil
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// exec runs a statement that returns no rows. Callers hold c.mu.
func (c *SQLiteCache) exec(query string) error {
	stmt, err := c.conn.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Reset()

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Close closes the cache and releases any resources.
func (c *SQLiteCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Get returns the cached document for key.
func (c *SQLiteCache) Get(key string) (document.Document, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return document.Document{}, false, ErrNotInitialized
	}

	stmt, err := c.conn.Prepare(`SELECT sentences FROM segment_cache WHERE cache_key = ?;`)
	if err != nil {
		return document.Document{}, false, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, key)

	hasRow, err := stmt.Step()
	if err != nil {
		return document.Document{}, false, fmt.Errorf("failed to execute select statement: %w", err)
	}
	if !hasRow {
		return document.Document{}, false, nil
	}

	// For binary data, we need to create a buffer and use ColumnBytes to fill it
	buf := make([]byte, stmt.ColumnLen(0))
	stmt.ColumnBytes(0, buf)

	var sentences []document.Sentence
	if err := json.Unmarshal(buf, &sentences); err != nil {
		return document.Document{}, false, fmt.Errorf("failed to decode cached sentences for %s: %w", key, err)
	}
	return document.Document{Sentences: sentences}, true, nil
}

// Put stores doc under key and trims the table to maxEntries rows.
func (c *SQLiteCache) Put(key string, doc document.Document) error {
	data, err := json.Marshal(doc.Sentences)
	if err != nil {
		return fmt.Errorf("failed to encode sentences: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotInitialized
	}

	if err := c.insert(key, data); err != nil {
		return err
	}
	return c.evict()
}

func (c *SQLiteCache) insert(key string, data []byte) error {
	stmt, err := c.conn.Prepare(`
	INSERT OR REPLACE INTO segment_cache (cache_key, sentences, created_at)
	VALUES (?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	// Bind parameters - indices in sqlite are 1-based
	stmt.BindText(1, key)
	stmt.BindBytes(2, data)
	stmt.BindInt64(3, time.Now().UnixNano())

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}
	return nil
}

// evict drops the oldest rows beyond maxEntries.
func (c *SQLiteCache) evict() error {
	stmt, err := c.conn.Prepare(`
	DELETE FROM segment_cache WHERE cache_key IN (
		SELECT cache_key FROM segment_cache
		ORDER BY created_at DESC, rowid DESC
		LIMIT -1 OFFSET ?
	);`)
	if err != nil {
		return fmt.Errorf("failed to prepare evict statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, int64(c.maxEntries))
	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to evict cache entries: %w", err)
	}
	return nil
}

// Len returns the number of cached documents.
func (c *SQLiteCache) Len() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return 0, ErrNotInitialized
	}
	return c.count()
}

func (c *SQLiteCache) count() (int, error) {
	stmt, err := c.conn.Prepare(`SELECT COUNT(*) FROM segment_cache;`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare count statement: %w", err)
	}
	defer stmt.Reset()

	if _, err := stmt.Step(); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return int(stmt.ColumnInt64(0)), nil
}

// Clear removes all entries and returns how many were removed.
func (c *SQLiteCache) Clear() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return 0, ErrNotInitialized
	}

	n, err := c.count()
	if err != nil {
		return 0, err
	}
	if err := c.exec(`DELETE FROM segment_cache;`); err != nil {
		return 0, err
	}
	return n, nil
}
