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

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/principal"
	"github.com/carehome-io/carehome/internal/validation"
)

// PostRefresh exchanges a refresh token for a new pair. The principal is
// re-resolved with the same rules as the gate, so disabled, locked, or
// stale sessions cannot refresh.
func (a *Auth) PostRefresh(
	c echo.Context,
) error {
	ctx := c.Request().Context()
	ev := gate.NewEvent(c, "auth.refresh", "staff", audit.CategoryAuthentication)

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid request body"})
	}
	if errMsg, ok := validation.Struct(req); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	p, err := a.resolver.ResolveKind(ctx, req.RefreshToken, authtoken.KindRefresh)
	if err != nil {
		ev.Reason = authtoken.ReasonTokenInvalid
		var re *principal.ResolveError
		if errors.As(err, &re) {
			ev.Reason = re.Reason
			ev.ActorID = re.Subject
			ev.TenantID = re.Tenant
			ev.TargetID = re.Subject
		}

		if errors.Is(err, principal.ErrStoreUnavailable) {
			ev.Outcome = audit.OutcomeError
			a.recorder.Record(ctx, ev)
			return gate.Internal(c)
		}

		ev.Outcome = audit.OutcomeDeny
		a.recorder.Record(ctx, ev)
		return gate.Unauthorized(c)
	}

	ev.ActorID = p.ID
	ev.ActorRole = p.Role
	ev.TenantID = p.TenantID
	ev.TargetID = p.ID

	pair, err := a.issuer.Issue(p.ID, p.Role, p.TenantID)
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
