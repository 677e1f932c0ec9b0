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

package resident

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/authtoken"
)

// GetResidents lists residents. Base roles see only the residents they are
// assigned to; escalated roles see the whole tenant.
func (r *Resident) GetResidents(
	c echo.Context,
) error {
	p := gate.PrincipalFrom(c)

	staffID := p.ID
	if p.Role.AtLeast(authtoken.EscalationRole) {
		staffID = ""
	}

	residents, err := r.store.ListResidents(c.Request().Context(), p.TenantID, staffID)
	if err != nil {
		return fmt.Errorf("list residents: %w", err)
	}

	gate.SetAuditDetails(c, map[string]any{"count": len(residents)})

	return c.JSON(http.StatusOK, residents)
}
