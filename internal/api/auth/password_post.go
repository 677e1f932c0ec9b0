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
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/staff"
	"github.com/carehome-io/carehome/internal/validation"
)

// PostPassword changes the caller's password. It runs behind the gate;
// stamping the change time revokes every token issued before it, so the
// response carries a fresh pair.
func (a *Auth) PostPassword(
	c echo.Context,
) error {
	ctx := c.Request().Context()
	p := gate.PrincipalFrom(c)
	gate.SetTargetID(c, p.ID)

	var req PasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid request body"})
	}
	if errMsg, ok := validation.Struct(req); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	rec, err := a.store.FindByID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("load staff: %w", err)
	}

	if err := staff.VerifyPassword(rec.PasswordHash, req.CurrentPassword); err != nil {
		gate.SetAuditDetails(c, map[string]any{"currentPasswordMatched": false})
		return gate.Unauthorized(c)
	}

	hash, err := staff.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: err.Error()})
	}

	if err := a.store.SetPassword(ctx, p.ID, hash, a.now()); err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	pair, err := a.issuer.Issue(p.ID, p.Role, p.TenantID)
	if err != nil {
		return fmt.Errorf("issue tokens: %w", err)
	}

	gate.SetAuditDetails(c, map[string]any{"credentialsRotated": true})

	return c.JSON(http.StatusOK, pair)
}
