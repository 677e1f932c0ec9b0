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

package staff

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	staffstore "github.com/carehome-io/carehome/internal/staff"
	"github.com/carehome-io/carehome/internal/validation"
)

// PutStaffStatus enables, disables, or unlocks an account. The change is
// seen by the very next request the account makes.
func (s *Staff) PutStaffStatus(
	c echo.Context,
) error {
	rec := recordFrom(c)

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid request body"})
	}
	if errMsg, ok := validation.Struct(req); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	status := staffstore.Status{Active: *req.Active, Unlock: req.Unlock}
	gate.SetAuditDetails(c, map[string]any{
		"active": status.Active,
		"unlock": status.Unlock,
	})

	if err := s.store.SetStatus(c.Request().Context(), rec.ID, status); err != nil {
		return fmt.Errorf("set staff status: %w", err)
	}

	rec.Active = status.Active
	if status.Unlock {
		rec.LockedUntil = nil
		rec.FailedLogins = 0
	}

	return c.JSON(http.StatusOK, rec)
}
