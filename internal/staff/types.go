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

// Package staff persists staff accounts: identity, role, credentials, and
// the account state the request gate re-reads on every request.
package staff

import (
	"context"
	"errors"
	"time"

	"github.com/carehome-io/carehome/internal/authtoken"
)

// ErrNotFound is returned when no staff record matches.
var ErrNotFound = errors.New("staff record not found")

// ErrEmailTaken is returned when creating a record whose email already exists.
var ErrEmailTaken = errors.New("staff email already registered")

// Record is the persisted state of a staff account.
type Record struct {
	ID                  string         `json:"id"`
	TenantID            string         `json:"tenantId"`
	Email               string         `json:"email"`
	Name                string         `json:"name"`
	Role                authtoken.Role `json:"role"`
	Active              bool           `json:"active"`
	LockedUntil         *time.Time     `json:"lockedUntil,omitempty"`
	CredentialChangedAt time.Time      `json:"credentialChangedAt"`
	FailedLogins        int            `json:"failedLogins"`
	PasswordHash        string         `json:"-"`
	CreatedAt           time.Time      `json:"createdAt"`
}

// LockedAt reports whether the account is locked at now.
func (r *Record) LockedAt(
	now time.Time,
) bool {
	return r.LockedUntil != nil && r.LockedUntil.After(now)
}

// Status is the mutable account state an administrator may change.
type Status struct {
	Active bool
	// Unlock clears any lockout and the failed login counter.
	Unlock bool
}

// Store is the persistence boundary for staff accounts.
type Store interface {
	// FindByID returns the record or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Record, error)
	// FindByEmail returns the record or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*Record, error)
	// Create inserts a new record.
	Create(ctx context.Context, rec *Record) error
	// SetStatus updates the active flag and optionally clears a lockout.
	SetStatus(ctx context.Context, id string, status Status) error
	// SetPassword stores a new hash and stamps credential_changed_at.
	SetPassword(ctx context.Context, id string, hash string, changedAt time.Time) error
	// RecordLoginFailure increments the failure counter, locking the
	// account until lockUntil once the counter reaches maxFailures.
	RecordLoginFailure(
		ctx context.Context,
		id string,
		maxFailures int,
		lockUntil time.Time,
	) (*Record, error)
	// ResetLoginFailures clears the failure counter after a good login.
	ResetLoginFailures(ctx context.Context, id string) error
	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}
