package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hopwise/hopwise/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var (
	_ driven.CacheStore  = (*Store)(nil)
	_ driven.CachePurger = (*Store)(nil)
)

// Store is a SQLite-backed cache.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore opens (or creates) cache.db in dataDir.
// If dataDir is empty, defaults to ~/.hopwise/data.
func NewStore(dataDir string, opts ...Option) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".hopwise", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Get returns the stored value or domain.ErrCacheMiss. Expired rows are
// deleted on read.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&value, &expiresAt)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.bump(ctx, "misses")
		return nil, domain.ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	if s.now().UnixNano() >= expiresAt {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM cache_entries WHERE key = ? AND expires_at = ?`, key, expiresAt); err != nil {
			return nil, fmt.Errorf("deleting expired entry: %w", err)
		}
		s.bump(ctx, "expired")
		s.bump(ctx, "misses")
		return nil, domain.ErrCacheMiss
	}

	s.bump(ctx, "hits")
	return value, nil
}

// Set stores value for ttl. A non-positive ttl stores nothing.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	expiresAt := s.now().Add(ttl).UnixNano()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	s.bump(ctx, "sets")
	return nil
}

// Purge deletes every expired row and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE expires_at <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	if n > 0 {
		_, _ = s.db.ExecContext(ctx, `UPDATE cache_stats SET value = value + ? WHERE name = 'expired'`, n)
	}
	return n, nil
}

// bump increments a stats counter. Counter failures never fail a lookup.
func (s *Store) bump(ctx context.Context, name string) {
	_, _ = s.db.ExecContext(ctx, `UPDATE cache_stats SET value = value + 1 WHERE name = ?`, name)
}

// Stats returns persisted counters and the live entry count.
func (s *Store) Stats(ctx context.Context) (domain.CacheStats, error) {
	stats := domain.CacheStats{Backend: string(domain.BackendSQLite)}

	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM cache_stats`)
	if err != nil {
		return stats, fmt.Errorf("reading cache stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return stats, fmt.Errorf("scanning cache stats: %w", err)
		}
		switch name {
		case "hits":
			stats.Hits = value
		case "misses":
			stats.Misses = value
		case "sets":
			stats.Sets = value
		case "expired":
			stats.Expired = value
		}
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterating cache stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cache_entries WHERE expires_at > ?`, s.now().UnixNano(),
	).Scan(&stats.Entries)
	if err != nil {
		return stats, fmt.Errorf("counting cache entries: %w", err)
	}
	return stats, nil
}
