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

package principal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/staff"
)

// TokenVerifier verifies session tokens of a given kind.
type TokenVerifier interface {
	VerifyKind(
		tokenString string,
		kind authtoken.Kind,
	) (*authtoken.CustomClaims, error)
}

// Resolver turns a bearer token into a Principal by re-reading the staff
// store on every call.
type Resolver struct {
	logger   *slog.Logger
	verifier TokenVerifier
	store    staff.Store
	now      func() time.Time
}

// NewResolver creates a Resolver. A nil now defaults to time.Now.
func NewResolver(
	logger *slog.Logger,
	verifier TokenVerifier,
	store staff.Store,
	now func() time.Time,
) *Resolver {
	if now == nil {
		now = time.Now
	}

	return &Resolver{
		logger:   logger,
		verifier: verifier,
		store:    store,
		now:      now,
	}
}

// Resolve verifies an access token and loads the current principal.
func (r *Resolver) Resolve(
	ctx context.Context,
	accessToken string,
) (*Principal, error) {
	return r.ResolveKind(ctx, accessToken, authtoken.KindAccess)
}

// ResolveKind verifies a token of the given kind and loads the current
// principal, applying the disabled, locked, and stale checks in that order.
func (r *Resolver) ResolveKind(
	ctx context.Context,
	tokenString string,
	kind authtoken.Kind,
) (*Principal, error) {
	claims, err := r.verifier.VerifyKind(tokenString, kind)
	if err != nil {
		return nil, newResolveError(ErrUnauthenticated, authtoken.ReasonFor(err), nil, err)
	}

	return r.Load(ctx, claims)
}

// Load resolves the principal named by already verified claims.
func (r *Resolver) Load(
	ctx context.Context,
	claims *authtoken.CustomClaims,
) (*Principal, error) {
	rec, err := r.store.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return nil, newResolveError(
				ErrUnauthenticated, authtoken.ReasonPrincipalUnknown, claims, nil,
			)
		}

		r.logger.Error(
			"failed to load principal",
			slog.String("subject", claims.Subject),
			slog.String("error", err.Error()),
		)
		return nil, newResolveError(
			ErrStoreUnavailable, authtoken.ReasonStoreUnavailable, claims, err,
		)
	}

	if rec.TenantID != claims.TenantID {
		return nil, newResolveError(
			ErrUnauthenticated, authtoken.ReasonTokenInvalid, claims, nil,
		)
	}

	now := r.now()
	p := FromRecord(rec, claims.IssuedAt.Time)

	if !p.Active {
		return nil, newResolveError(
			ErrAccountDisabled, authtoken.ReasonAccountInactive, claims, nil,
		)
	}

	if p.LockedAt(now) {
		return nil, newResolveError(
			ErrAccountLocked, authtoken.ReasonAccountLocked, claims, nil,
		)
	}

	if IsStale(claims.IssuedAt.Time, rec.CredentialChangedAt) {
		return nil, newResolveError(
			ErrTokenStale, authtoken.ReasonTokenStale, claims, nil,
		)
	}

	return p, nil
}

// IsStale reports whether a token issued at issuedAt predates a credential
// change. Token iat has whole-second precision, so the change time is
// truncated before comparing.
func IsStale(
	issuedAt time.Time,
	credentialChangedAt time.Time,
) bool {
	if credentialChangedAt.IsZero() {
		return false
	}

	return issuedAt.Before(credentialChangedAt.Truncate(time.Second))
}
