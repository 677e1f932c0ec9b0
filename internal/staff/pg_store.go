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

package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carehome-io/carehome/internal/authtoken"
)

// ensure PGStore implements Store at compile time.
var _ Store = (*PGStore)(nil)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

const recordColumns = `id, tenant_id, email, name, role, active, locked_until,
	credential_changed_at, failed_logins, password_hash, created_at`

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

// NewPGStore creates a new PGStore.
func NewPGStore(
	db *sql.DB,
) *PGStore {
	return &PGStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(
	row rowScanner,
) (*Record, error) {
	var (
		rec         Record
		role        string
		lockedUntil sql.NullTime
	)

	err := row.Scan(
		&rec.ID,
		&rec.TenantID,
		&rec.Email,
		&rec.Name,
		&role,
		&rec.Active,
		&lockedUntil,
		&rec.CredentialChangedAt,
		&rec.FailedLogins,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec.Role = authtoken.Role(role)
	if lockedUntil.Valid {
		t := lockedUntil.Time
		rec.LockedUntil = &t
	}

	return &rec, nil
}

// FindByID returns the staff record with the given id.
func (s *PGStore) FindByID(
	ctx context.Context,
	id string,
) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+recordColumns+` from staff where id = $1`, id)

	rec, err := scanRecord(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find staff by id: %w", err)
	}

	return rec, err
}

// FindByEmail returns the staff record with the given email.
func (s *PGStore) FindByEmail(
	ctx context.Context,
	email string,
) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+recordColumns+` from staff where email = $1`,
		strings.ToLower(strings.TrimSpace(email)))

	rec, err := scanRecord(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find staff by email: %w", err)
	}

	return rec, err
}

// Create inserts a new staff record.
func (s *PGStore) Create(
	ctx context.Context,
	rec *Record,
) error {
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))

	_, err := s.db.ExecContext(ctx,
		`insert into staff (`+recordColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID,
		rec.TenantID,
		rec.Email,
		rec.Name,
		string(rec.Role),
		rec.Active,
		rec.LockedUntil,
		rec.CredentialChangedAt,
		rec.FailedLogins,
		rec.PasswordHash,
		rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert staff: %w", err)
	}

	return nil
}

// SetStatus updates the active flag and optionally clears a lockout.
func (s *PGStore) SetStatus(
	ctx context.Context,
	id string,
	status Status,
) error {
	res, err := s.db.ExecContext(ctx,
		`update staff
		set active = $2,
			locked_until = case when $3 then null else locked_until end,
			failed_logins = case when $3 then 0 else failed_logins end
		where id = $1`,
		id, status.Active, status.Unlock)
	if err != nil {
		return fmt.Errorf("update staff status: %w", err)
	}

	return requireRow(res)
}

// SetPassword stores a new password hash and stamps credential_changed_at,
// which revokes every token issued before changedAt.
func (s *PGStore) SetPassword(
	ctx context.Context,
	id string,
	hash string,
	changedAt time.Time,
) error {
	res, err := s.db.ExecContext(ctx,
		`update staff set password_hash = $2, credential_changed_at = $3 where id = $1`,
		id, hash, changedAt)
	if err != nil {
		return fmt.Errorf("update staff password: %w", err)
	}

	return requireRow(res)
}

// RecordLoginFailure increments the failure counter and locks the account
// once maxFailures is reached. A maxFailures of zero disables lockout.
func (s *PGStore) RecordLoginFailure(
	ctx context.Context,
	id string,
	maxFailures int,
	lockUntil time.Time,
) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`update staff
		set failed_logins = failed_logins + 1,
			locked_until = case
				when $2 > 0 and failed_logins + 1 >= $2 then $3
				else locked_until
			end
		where id = $1
		returning `+recordColumns,
		id, maxFailures, lockUntil)

	rec, err := scanRecord(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("record login failure: %w", err)
	}

	return rec, err
}

// ResetLoginFailures clears the failure counter and any expired lockout.
func (s *PGStore) ResetLoginFailures(
	ctx context.Context,
	id string,
) error {
	if _, err := s.db.ExecContext(ctx,
		`update staff set failed_logins = 0, locked_until = null where id = $1`, id); err != nil {
		return fmt.Errorf("reset login failures: %w", err)
	}

	return nil
}

// Ping checks database connectivity.
func (s *PGStore) Ping(
	ctx context.Context,
) error {
	return s.db.PingContext(ctx)
}

func requireRow(
	res sql.Result,
) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
