// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
)

// pingTimeout bounds the startup connectivity check. An unreachable server
// must fail startup, not hang it.
const pingTimeout = 10 * time.Second

// openPostgres opens a PostgreSQL connection pool and verifies it is
// reachable before any traffic is accepted.
func openPostgres(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// insertOrReplaceRe matches the SQLite insert-or-replace form. The first
// listed column is the unique key the statement replaces by.
var insertOrReplaceRe = regexp.MustCompile(`(?i)^\s*INSERT\s+OR\s+REPLACE\s+INTO\s+(\w+)\s*\(([^)]+)\)`)

// postgresDialect translates statements written in the SQLite call-site
// dialect into PostgreSQL form.
type postgresDialect struct{}

func (postgresDialect) name() string { return "postgres" }

// rewrite converts ? placeholders to $1..$n positional parameters and the
// insert-or-replace form to the native upsert-by-unique-key form.
// Parameter order is preserved.
func (postgresDialect) rewrite(query string) string {
	query = rewriteUpsert(query)
	return rewritePlaceholders(query)
}

// rewriteDDL translates the auto-increment and timestamp-default column
// declarations on top of the regular rewrite rules.
func (d postgresDialect) rewriteDDL(query string) string {
	query = strings.ReplaceAll(query, "INTEGER PRIMARY KEY AUTOINCREMENT", "BIGSERIAL PRIMARY KEY")
	query = strings.ReplaceAll(query, "DATETIME DEFAULT CURRENT_TIMESTAMP", "TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP")
	query = strings.ReplaceAll(query, "DATETIME", "TIMESTAMPTZ")
	return d.rewrite(query)
}

// insert appends RETURNING id to recover the new row identifier; PostgreSQL
// does not report last-insert-id through database/sql.
func (d postgresDialect) insert(ctx context.Context, q querier, query string, args []any) (int64, error) {
	stmt := d.rewrite(strings.TrimRight(strings.TrimSpace(query), ";")) + " RETURNING id"
	var id int64
	if err := q.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (postgresDialect) sessionsDDL() []string {
	// Table shape required by scs/postgresstore.
	return []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BYTEA NOT NULL,
			expiry TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`,
	}
}

// rewritePlaceholders replaces each ? outside a quoted literal with the
// next $n parameter.
func rewritePlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inString := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			// Doubled quotes inside a literal stay inside it.
			if inString && i+1 < len(query) && query[i+1] == '\'' {
				b.WriteString("''")
				i++
				continue
			}
			inString = !inString
			b.WriteByte(c)
		case c == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// rewriteUpsert converts INSERT OR REPLACE INTO t (k, a, b) VALUES ... into
// INSERT ... ON CONFLICT (k) DO UPDATE SET a = EXCLUDED.a, b = EXCLUDED.b.
func rewriteUpsert(query string) string {
	m := insertOrReplaceRe.FindStringSubmatch(query)
	if m == nil {
		return query
	}

	table := m[1]
	cols := strings.Split(m[2], ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	rest := query[len(m[0]):]
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(")")
	b.WriteString(strings.TrimRight(strings.TrimRight(rest, " \t\n"), ";"))
	b.WriteString(" ON CONFLICT (")
	b.WriteString(cols[0])
	b.WriteString(") DO UPDATE SET ")
	for i, col := range cols[1:] {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col)
		b.WriteString(" = EXCLUDED.")
		b.WriteString(col)
	}
	return b.String()
}
