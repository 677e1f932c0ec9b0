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

// Package principal resolves a bearer token into the live state of the staff
// member making the request.
package principal

import (
	"time"

	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/staff"
)

// Principal is the authenticated staff member for the duration of one
// request. It is built fresh from the staff store on every request.
type Principal struct {
	ID                  string
	Role                authtoken.Role
	TenantID            string
	Active              bool
	LockedUntil         *time.Time
	CredentialChangedAt time.Time
	// TokenIssuedAt is the iat of the token the principal authenticated with.
	TokenIssuedAt time.Time
}

// FromRecord builds a Principal from persisted staff state.
func FromRecord(
	rec *staff.Record,
	issuedAt time.Time,
) *Principal {
	var lockedUntil *time.Time
	if rec.LockedUntil != nil {
		t := *rec.LockedUntil
		lockedUntil = &t
	}

	return &Principal{
		ID:                  rec.ID,
		Role:                rec.Role,
		TenantID:            rec.TenantID,
		Active:              rec.Active,
		LockedUntil:         lockedUntil,
		CredentialChangedAt: rec.CredentialChangedAt,
		TokenIssuedAt:       issuedAt,
	}
}

// LockedAt reports whether the account is locked at now.
func (p *Principal) LockedAt(
	now time.Time,
) bool {
	return p.LockedUntil != nil && p.LockedUntil.After(now)
}

// Usable reports whether the principal may be granted anything at now.
func (p *Principal) Usable(
	now time.Time,
) bool {
	return p.Active && !p.LockedAt(now)
}
