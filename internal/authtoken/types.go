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

// Package authtoken issues and verifies signed session tokens and holds the
// static role to capability table.
package authtoken

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer is the iss claim stamped on every token.
const Issuer = "carehome"

// Default token lifetimes.
const (
	DefaultAccessTTL  = 7 * 24 * time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

var (
	// ErrInvalidToken is returned for malformed, tampered, or wrongly typed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a structurally valid token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

// Token kinds.
const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Options is the immutable codec configuration built once at startup.
type Options struct {
	// SigningKey is the HMAC secret.
	SigningKey string
	// AccessTTL defaults to DefaultAccessTTL when zero.
	AccessTTL time.Duration
	// RefreshTTL defaults to DefaultRefreshTTL when zero.
	RefreshTTL time.Duration
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
}

// Token issues and verifies session tokens.
type Token struct {
	logger     *slog.Logger
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// CustomClaims are the claims carried by every carehome token.
type CustomClaims struct {
	// Role is the staff role at issue time. Authorization always uses the
	// role from the live staff record, not this claim.
	Role Role `json:"role"      validate:"required,staff_role"`
	// TenantID is the care facility the principal belongs to.
	TenantID string `json:"tenant_id" validate:"required"`
	// Kind is "access" or "refresh".
	Kind Kind `json:"token_use" validate:"required,oneof=access refresh"`
	jwt.RegisteredClaims
}

// Pair is the access and refresh token issued together at login.
type Pair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
