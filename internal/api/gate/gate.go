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

package gate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/authz"
	"github.com/carehome-io/carehome/internal/principal"
	"github.com/carehome-io/carehome/internal/telemetry"
)

// New creates a Gate.
func New(
	logger *slog.Logger,
	resolver PrincipalResolver,
	recorder Recorder,
	now func() time.Time,
) *Gate {
	if now == nil {
		now = time.Now
	}

	return &Gate{
		logger:   logger.With(slog.String("component", "gate")),
		resolver: resolver,
		recorder: recorder,
		now:      now,
	}
}

// Protect returns middleware enforcing route. Every terminal outcome except
// a missing token produces exactly one audit record.
func (g *Gate) Protect(
	route Route,
) echo.MiddlewareFunc {
	if route.TargetParam == "" {
		route.TargetParam = "id"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := BearerToken(c.Request())
			if !ok {
				return Unauthorized(c)
			}

			ctx := c.Request().Context()
			ev := g.event(c, route)

			p, err := g.resolver.Resolve(ctx, token)
			if err != nil {
				return g.rejectResolve(c, ev, err)
			}
			ev.ActorID = p.ID
			ev.ActorRole = p.Role
			ev.TenantID = p.TenantID
			c.SetRequest(c.Request().WithContext(
				telemetry.WithActor(ctx, p.ID, p.TenantID),
			))

			// Capability first so an unprivileged caller never triggers a
			// resource lookup.
			req := authz.Requirement{Capability: route.Capability}
			if d := authz.Evaluate(p, req, nil, g.now()); !d.Allowed {
				return g.deny(c, ev, d.Reason)
			}

			if route.Owner != nil {
				res, err := route.Owner(c)
				if err != nil {
					return g.rejectLookup(c, ev, err)
				}

				req.Ownership = true
				if d := authz.Evaluate(p, req, res, g.now()); !d.Allowed {
					return g.deny(c, ev, d.Reason)
				}
			}

			SetPrincipal(c, p)

			return g.execute(c, next, ev)
		}
	}
}

func (g *Gate) execute(
	c echo.Context,
	next echo.HandlerFunc,
	ev audit.Event,
) error {
	ctx := c.Request().Context()

	defer func() {
		if r := recover(); r != nil {
			ev.Outcome = audit.OutcomeError
			ev.Reason = authtoken.ReasonHandlerError
			ev.Details = detailsFrom(c)
			g.recorder.Record(ctx, ev)
			panic(r)
		}
	}()

	err := next(c)

	ev.Details = detailsFrom(c)
	if id, ok := c.Get(contextKeyTargetID).(string); ok && id != "" {
		ev.TargetID = id
	}

	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		ev.Outcome = audit.OutcomeUnknown
		ev.Reason = authtoken.ReasonOutcomeUnknown
	case err != nil || c.Response().Status >= http.StatusBadRequest:
		ev.Outcome = audit.OutcomeError
		ev.Reason = authtoken.ReasonHandlerError
	default:
		ev.Outcome = audit.OutcomeAllow
	}

	g.recorder.Record(ctx, ev)

	return err
}

func (g *Gate) rejectResolve(
	c echo.Context,
	ev audit.Event,
	err error,
) error {
	ev.Reason = authtoken.ReasonTokenInvalid

	var re *principal.ResolveError
	if errors.As(err, &re) {
		ev.Reason = re.Reason
		ev.ActorID = re.Subject
		ev.ActorRole = re.Role
		ev.TenantID = re.Tenant
	}

	if errors.Is(err, principal.ErrStoreUnavailable) {
		ev.Outcome = audit.OutcomeError
		ev.Category = audit.CategoryAuthentication
		g.recorder.Record(c.Request().Context(), ev)

		return Internal(c)
	}

	g.logger.Debug(
		"request unauthenticated",
		slog.String("action", ev.Action),
		slog.String("reason", string(ev.Reason)),
		slog.String("subject", ev.ActorID),
	)

	ev.Outcome = audit.OutcomeDeny
	ev.Category = audit.CategorySecurityDenial
	g.recorder.Record(c.Request().Context(), ev)

	return Unauthorized(c)
}

func (g *Gate) rejectLookup(
	c echo.Context,
	ev audit.Event,
	err error,
) error {
	ev.Outcome = audit.OutcomeError

	if errors.Is(err, ErrResourceNotFound) {
		ev.Reason = authtoken.ReasonResourceNotFound
		g.recorder.Record(c.Request().Context(), ev)

		return NotFound(c)
	}

	g.logger.Error(
		"failed to load resource owners",
		slog.String("action", ev.Action),
		slog.String("target_id", ev.TargetID),
		slog.String("error", err.Error()),
	)

	ev.Reason = authtoken.ReasonStoreUnavailable
	g.recorder.Record(c.Request().Context(), ev)

	return Internal(c)
}

func (g *Gate) deny(
	c echo.Context,
	ev audit.Event,
	reason authtoken.ReasonCode,
) error {
	g.logger.Debug(
		"request denied",
		slog.String("action", ev.Action),
		slog.String("reason", string(reason)),
		slog.String("actor_id", ev.ActorID),
	)

	ev.Outcome = audit.OutcomeDeny
	ev.Reason = reason
	ev.Category = audit.CategorySecurityDenial
	g.recorder.Record(c.Request().Context(), ev)

	return Forbidden(c)
}

func (g *Gate) event(
	c echo.Context,
	route Route,
) audit.Event {
	category := audit.CategoryResourceAccess
	if route.Mutation {
		category = audit.CategoryResourceMutation
	}

	ev := NewEvent(c, route.Action, route.TargetType, category)
	ev.TargetID = c.Param(route.TargetParam)

	return ev
}
