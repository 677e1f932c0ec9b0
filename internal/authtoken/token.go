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

package authtoken

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// New creates a token codec from immutable options.
func New(
	logger *slog.Logger,
	opts Options,
) *Token {
	t := &Token{
		logger:     logger,
		signingKey: []byte(opts.SigningKey),
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		now:        opts.Now,
	}

	if t.accessTTL <= 0 {
		t.accessTTL = DefaultAccessTTL
	}
	if t.refreshTTL <= 0 {
		t.refreshTTL = DefaultRefreshTTL
	}
	if t.now == nil {
		t.now = time.Now
	}

	return t
}

// Issue signs a fresh access and refresh token pair for the principal.
func (t *Token) Issue(
	principalID string,
	role Role,
	tenantID string,
) (*Pair, error) {
	now := t.now()

	access, accessExp, err := t.sign(principalID, role, tenantID, KindAccess, now, t.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, refreshExp, err := t.sign(principalID, role, tenantID, KindRefresh, now, t.refreshTTL)
	if err != nil {
		return nil, err
	}

	t.logger.Debug(
		"issued token pair",
		slog.String("subject", principalID),
		slog.String("role", string(role)),
		slog.String("tenant_id", tenantID),
	)

	return &Pair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (t *Token) sign(
	principalID string,
	role Role,
	tenantID string,
	kind Kind,
	now time.Time,
	ttl time.Duration,
) (string, time.Time, error) {
	if len(t.signingKey) == 0 {
		return "", time.Time{}, fmt.Errorf("signing key is not configured")
	}
	if principalID == "" {
		return "", time.Time{}, fmt.Errorf("principal id is required")
	}

	expiresAt := now.Add(ttl)
	claims := CustomClaims{
		Role:     role,
		TenantID: tenantID,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}

	return signed, claims.ExpiresAt.Time, nil
}
