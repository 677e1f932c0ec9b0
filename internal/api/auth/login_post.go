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

package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/staff"
	"github.com/carehome-io/carehome/internal/validation"
)

// dummyHash keeps the unknown-email path as slow as a real comparison.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := staff.HashPassword("carehome-timing-equaliser")
	return hash
})

// PostLogin exchanges an email and password for a token pair. Every
// failure returns the same 401 body.
func (a *Auth) PostLogin(
	c echo.Context,
) error {
	ctx := c.Request().Context()
	ev := gate.NewEvent(c, "auth.login", "staff", audit.CategoryAuthentication)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid request body"})
	}
	if errMsg, ok := validation.Struct(req); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	rec, err := a.store.FindByEmail(ctx, req.Email)
	if errors.Is(err, staff.ErrNotFound) {
		_ = staff.VerifyPassword(dummyHash(), req.Password)
		return a.reject(c, ev, authtoken.ReasonBadCredentials)
	}
	if err != nil {
		a.logger.Error(
			"failed to load staff for login",
			slog.String("error", err.Error()),
		)
		ev.Outcome = audit.OutcomeError
		ev.Reason = authtoken.ReasonStoreUnavailable
		a.recorder.Record(ctx, ev)
		return gate.Internal(c)
	}

	ev.ActorID = rec.ID
	ev.ActorRole = rec.Role
	ev.TenantID = rec.TenantID
	ev.TargetID = rec.ID

	now := a.now()
	switch {
	case !rec.Active:
		return a.reject(c, ev, authtoken.ReasonAccountInactive)
	case rec.LockedAt(now):
		return a.reject(c, ev, authtoken.ReasonAccountLocked)
	}

	// An expired lockout starts a fresh failure window.
	if rec.LockedUntil != nil && rec.FailedLogins > 0 {
		if err := a.store.ResetLoginFailures(ctx, rec.ID); err != nil {
			a.logger.Error(
				"failed to reset login failures",
				slog.String("staff_id", rec.ID),
				slog.String("error", err.Error()),
			)
		} else {
			rec.FailedLogins = 0
		}
	}

	if err := staff.VerifyPassword(rec.PasswordHash, req.Password); err != nil {
		updated, ferr := a.store.RecordLoginFailure(
			ctx, rec.ID, a.maxFailedLogins, now.Add(a.lockoutDuration),
		)
		if ferr != nil {
			a.logger.Error(
				"failed to record login failure",
				slog.String("staff_id", rec.ID),
				slog.String("error", ferr.Error()),
			)
		} else if updated.LockedAt(now) {
			ev.Details = map[string]any{"lockedOut": true}
			a.logger.Warn(
				"staff account locked after failed logins",
				slog.String("staff_id", rec.ID),
				slog.Int("failures", updated.FailedLogins),
			)
		}

		return a.reject(c, ev, authtoken.ReasonBadCredentials)
	}

	if rec.FailedLogins > 0 {
		if err := a.store.ResetLoginFailures(ctx, rec.ID); err != nil {
			a.logger.Warn(
				"failed to reset login failures",
				slog.String("staff_id", rec.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	pair, err := a.issuer.Issue(rec.ID, rec.Role, rec.TenantID)
	if err != nil {
		a.logger.Error("failed to issue tokens", slog.String("error", err.Error()))
		ev.Outcome = audit.OutcomeError
		ev.Reason = authtoken.ReasonHandlerError
		a.recorder.Record(ctx, ev)
		return gate.Internal(c)
	}

	ev.Outcome = audit.OutcomeAllow
	a.recorder.Record(ctx, ev)

	return c.JSON(http.StatusOK, pair)
}

func (a *Auth) reject(
	c echo.Context,
	ev audit.Event,
	reason authtoken.ReasonCode,
) error {
	ev.Outcome = audit.OutcomeDeny
	ev.Reason = reason
	a.recorder.Record(c.Request().Context(), ev)

	return gate.Unauthorized(c)
}
