package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/001_initial.sql
var initialMigration string

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
}

// Open opens or creates the database at the given path
func Open(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with common settings
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	sqlDB.SetMaxIdleConns(1)

	db := &DB{sqlDB}

	// Run migrations
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// migrate runs database migrations
func (db *DB) migrate() error {
	// Check if we need to run migrations
	var tableCount int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='jobs'
	`).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to check migrations: %w", err)
	}

	if tableCount == 0 {
		// Run initial migration
		if _, err := db.Exec(initialMigration); err != nil {
			return fmt.Errorf("failed to run initial migration: %w", err)
		}
	}

	return nil
}

// Transaction runs a function in a transaction
func (db *DB) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Tx exposes the create and lookup queries inside a transaction
type Tx struct {
	tx *sql.Tx
}

// CreateCompany inserts a new company within the transaction
func (t *Tx) CreateCompany(ctx context.Context, c *Company) error {
	return createCompany(ctx, t.tx, c)
}

// GetCompany retrieves a company by ID within the transaction
func (t *Tx) GetCompany(ctx context.Context, id string) (*Company, error) {
	return getCompany(ctx, t.tx, id)
}

// CreateJob inserts a new job posting within the transaction
func (t *Tx) CreateJob(ctx context.Context, j *Job) error {
	return createJob(ctx, t.tx, j)
}

// GetJob retrieves a job by ID within the transaction
func (t *Tx) GetJob(ctx context.Context, id string) (*Job, error) {
	return getJob(ctx, t.tx, id)
}

// WithTx runs fn against a Tx, committing only when fn succeeds
func (db *DB) WithTx(ctx context.Context, fn func(*Tx) error) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		return fn(&Tx{tx: tx})
	})
}

// Health checks database connectivity
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}
