// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsTable = "schema_migrations"

// Migrator applies forward-only SQL migrations in file name order and
// records each in schema_migrations.
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	logger *slog.Logger
}

// NewMigrator creates a Migrator over the embedded migrations.
func NewMigrator(
	logger *slog.Logger,
	db *sql.DB,
) *Migrator {
	sub, _ := fs.Sub(embeddedMigrations, "migrations")

	return NewMigratorFS(logger, db, sub)
}

// NewMigratorFS creates a Migrator over fsys, which holds *.up.sql files
// at its root.
func NewMigratorFS(
	logger *slog.Logger,
	db *sql.DB,
	fsys fs.FS,
) *Migrator {
	return &Migrator{
		db:     db,
		fsys:   fsys,
		logger: logger,
	}
}

// Up applies every pending migration and returns the names applied.
func (m *Migrator) Up(
	ctx context.Context,
) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	executed, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(executed))
	for _, name := range executed {
		done[name] = true
	}

	names, err := fs.Glob(m.fsys, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		if done[name] {
			continue
		}

		if err := m.apply(ctx, name); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}

		m.logger.Info("applied migration", slog.String("name", name))
		applied = append(applied, name)
	}

	return applied, nil
}

// Applied returns the names of applied migrations in order.
func (m *Migrator) Applied(
	ctx context.Context,
) ([]string, error) {
	rows, err := m.db.QueryContext(ctx,
		`select name from `+migrationsTable+` order by name`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan migration name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (m *Migrator) ensureTable(
	ctx context.Context,
) error {
	_, err := m.db.ExecContext(ctx, `create table if not exists `+migrationsTable+` (
		name text primary key,
		applied_at timestamptz not null default now()
	)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	return nil
}

func (m *Migrator) apply(
	ctx context.Context,
	name string,
) error {
	body, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return err
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range splitStatements(string(body)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`insert into `+migrationsTable+` (name) values ($1)`, name); err != nil {
		return err
	}

	return tx.Commit()
}

// splitStatements splits on semicolons outside single-quoted literals and
// drops empty statements.
func splitStatements(
	body string,
) []string {
	var (
		stmts    []string
		current  strings.Builder
		inString bool
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			stmts = append(stmts, stmt)
		}
		current.Reset()
	}

	for _, r := range body {
		switch {
		case r == '\'':
			inString = !inString
			current.WriteRune(r)
		case r == ';' && !inString:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return stmts
}
