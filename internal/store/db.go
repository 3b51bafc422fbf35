// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access over two interchangeable SQL
// backends: embedded SQLite and client/server PostgreSQL. All statements
// are written once in the SQLite dialect with ? placeholders; the active
// dialect rewrites them before execution and normalizes the result shape.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Config selects and configures the backend. A non-empty DatabaseURL picks
// PostgreSQL; otherwise the embedded SQLite file at Path is used. The choice
// is made once at startup and fixed for the process lifetime.
type Config struct {
	DatabaseURL string
	Path        string
}

// Result is the normalized outcome of a write statement.
type Result struct {
	RowsAffected int64
}

// Error wraps a backend execution failure with the backend name. Every
// store failure other than sql.ErrNoRows surfaces as *Error; callers match
// not-found with errors.Is(err, sql.ErrNoRows) and treat everything else
// as a store error.
type Error struct {
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Backend, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// querier is the subset of *sql.DB and *sql.Tx the dialects execute against.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dialect owns the statement translation and insert-id retrieval for one
// backend. Rewrites preserve parameter order; they never add or drop
// parameters.
type dialect interface {
	name() string
	// rewrite translates placeholders and the insert-or-replace form.
	rewrite(query string) string
	// rewriteDDL additionally translates column definitions; applied only
	// during schema creation.
	rewriteDDL(query string) string
	// insert executes an INSERT and returns the new row id.
	insert(ctx context.Context, q querier, query string, args []any) (int64, error)
	// sessionsDDL returns the backend-native session table definition
	// expected by the matching scs session store.
	sessionsDDL() []string
}

// DB is a fixed-backend database handle shared by all repositories.
type DB struct {
	conn *sql.DB
	d    dialect
}

// Open establishes the configured backend and verifies connectivity.
// An unreachable backend is a startup error, never a silent fallback.
func Open(cfg Config) (*DB, error) {
	if cfg.DatabaseURL != "" {
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres://") && !strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
			return nil, fmt.Errorf("database URL must be a postgres:// URL, got %q", cfg.DatabaseURL)
		}
		conn, err := openPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres backend: %w", err)
		}
		return &DB{conn: conn, d: postgresDialect{}}, nil
	}

	conn, err := openSQLite(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite backend: %w", err)
	}
	return &DB{conn: conn, d: sqliteDialect{}}, nil
}

// Backend returns the active backend name ("sqlite" or "postgres").
func (db *DB) Backend() string {
	return db.d.name()
}

// Conn exposes the underlying connection pool for collaborators that bind
// to it directly, such as the session store.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping verifies the backend is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return db.wrap(err)
	}
	return nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Query executes a read statement and returns the rows in statement order.
func (db *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := db.conn.QueryContext(ctx, db.d.rewrite(query), args...)
	if err != nil {
		return nil, db.wrap(err)
	}
	return rows, nil
}

// QueryRow executes a read statement expected to return at most one row.
// Scan surfaces sql.ErrNoRows when no row matches.
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.d.rewrite(query), args...)
}

// Exec executes a write statement and returns the affected row count.
func (db *DB) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := db.conn.ExecContext(ctx, db.d.rewrite(query), args...)
	if err != nil {
		return Result{}, db.wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Result{}, db.wrap(err)
	}
	return Result{RowsAffected: n}, nil
}

// Insert executes an INSERT and returns the identifier of the new row,
// regardless of how the backend reports it.
func (db *DB) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	id, err := db.d.insert(ctx, db.conn, query, args)
	if err != nil {
		return 0, db.wrap(err)
	}
	return id, nil
}

// ExecDDL executes a schema statement, applying the DDL dialect translation.
func (db *DB) ExecDDL(ctx context.Context, query string) error {
	if _, err := db.conn.ExecContext(ctx, db.d.rewriteDDL(query)); err != nil {
		return db.wrap(err)
	}
	return nil
}

// Tx is a transaction with the same statement translation as DB.
type Tx struct {
	tx *sql.Tx
	db *DB
}

// InTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise, so a partial failure leaves the
// store in its prior state.
func (db *DB) InTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return db.wrap(err)
	}
	if err := fn(&Tx{tx: tx, db: db}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return db.wrap(err)
	}
	return nil
}

// Query executes a read statement within the transaction.
func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, t.db.d.rewrite(query), args...)
	if err != nil {
		return nil, t.db.wrap(err)
	}
	return rows, nil
}

// QueryRow executes a single-row read within the transaction.
func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.db.d.rewrite(query), args...)
}

// Exec executes a write statement within the transaction.
func (t *Tx) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := t.tx.ExecContext(ctx, t.db.d.rewrite(query), args...)
	if err != nil {
		return Result{}, t.db.wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Result{}, t.db.wrap(err)
	}
	return Result{RowsAffected: n}, nil
}

// Insert executes an INSERT within the transaction and returns the new id.
func (t *Tx) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	id, err := t.db.d.insert(ctx, t.tx, query, args)
	if err != nil {
		return 0, t.db.wrap(err)
	}
	return id, nil
}

// wrap converts a backend error into *Error, passing sql.ErrNoRows through
// untouched so not-found stays distinguishable from execution failure.
func (db *DB) wrap(err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return &Error{Backend: db.d.name(), Err: err}
}
