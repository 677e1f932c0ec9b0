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

package audit

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	auditstore "github.com/carehome-io/carehome/internal/audit"
)

// GetAuditLogByID returns one entry. Entries of another tenant are
// reported as not found.
func (a *Audit) GetAuditLogByID(
	c echo.Context,
) error {
	id := c.Param("id")

	entry, err := a.Store.Get(c.Request().Context(), id)
	if errors.Is(err, auditstore.ErrNotFound) {
		return c.JSON(http.StatusNotFound, gate.ErrorResponse{Error: "audit entry not found"})
	}
	if err != nil {
		a.logger.Error(
			"failed to get audit entry",
			slog.String("error", err.Error()),
			slog.String("id", id),
		)
		return c.JSON(http.StatusInternalServerError, gate.ErrorResponse{Error: "failed to get audit entry"})
	}

	if entry.TenantID != gate.PrincipalFrom(c).TenantID {
		return c.JSON(http.StatusNotFound, gate.ErrorResponse{Error: "audit entry not found"})
	}

	gate.SetTargetID(c, entry.ID)

	return c.JSON(http.StatusOK, EntryResponse{Entry: *entry})
}
