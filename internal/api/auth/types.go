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

// Package auth provides the login, refresh, and password change handlers.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/principal"
	"github.com/carehome-io/carehome/internal/staff"
)

// Default lockout policy.
const (
	DefaultMaxFailedLogins = 5
	DefaultLockoutDuration = 2 * time.Hour
)

// TokenIssuer signs token pairs.
type TokenIssuer interface {
	Issue(
		principalID string,
		role authtoken.Role,
		tenantID string,
	) (*authtoken.Pair, error)
}

// RefreshResolver resolves a principal from a refresh token.
type RefreshResolver interface {
	ResolveKind(
		ctx context.Context,
		tokenString string,
		kind authtoken.Kind,
	) (*principal.Principal, error)
}

// Options configures the lockout policy.
type Options struct {
	MaxFailedLogins int
	LockoutDuration time.Duration
	Now             func() time.Time
}

// Auth implements the authentication endpoints.
type Auth struct {
	logger          *slog.Logger
	issuer          TokenIssuer
	resolver        RefreshResolver
	store           staff.Store
	recorder        gate.Recorder
	maxFailedLogins int
	lockoutDuration time.Duration
	now             func() time.Time
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// PasswordRequest is the body of POST /auth/password.
type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=12,max=72"`
}
