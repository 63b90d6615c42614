// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/budgetbook/internal/storage"
)

const (
	driverName = "sqlite"

	// DefaultUsername and DefaultPassword form the account provisioned on an
	// empty dataset. It is a known weak default for single-user desktop use.
	DefaultUsername = "admin"
	DefaultPassword = "admin123"

	busyTimeoutMillis = 5000
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// Config locates the dataset.
type Config struct {
	// Path is the database file. Its parent directory is created if missing.
	Path string
}

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	dsn string
}

// New opens the dataset described by cfg. Call Initialize before use to
// create the schema and the default account.
func New(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storage.Wrap("create database directory", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", cfg.Path, busyTimeoutMillis)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, storage.Wrap("open database", err)
	}

	// One connection at a time: every call is a single unit of work and
	// writers in this process never interleave.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storage.Wrap("ping database", err)
	}

	return &SQLiteStore{db: db, dsn: dsn}, nil
}

// Open is New followed by Initialize.
func Open(ctx context.Context, cfg Config) (*SQLiteStore, error) {
	store, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Initialize applies the schema and seeds the default account if the users
// table is empty.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if err := runMigrations(s.dsn); err != nil {
		return storage.Wrap("run migrations", err)
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return storage.Wrap("count users", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := s.CreateUser(ctx, DefaultUsername, DefaultPassword); err != nil {
		return fmt.Errorf("failed to seed default user: %w", err)
	}
	slog.InfoContext(ctx, "Provisioned default account", "username", DefaultUsername)
	return nil
}
