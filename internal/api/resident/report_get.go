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
	"github.com/oapi-codegen/runtime"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/care"
)

// GetDailyLogReport summarises the tenant's care logs for one UTC day.
func (r *Resident) GetDailyLogReport(
	c echo.Context,
) error {
	p := gate.PrincipalFrom(c)

	// The runtime binder treats a struct target as optional, so presence is
	// checked here.
	if c.QueryParam("date") == "" {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "date is required"})
	}

	var params ReportParams
	if err := runtime.BindQueryParameter("form", true, true, "date", c.QueryParams(), &params.Date); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "date must be YYYY-MM-DD"})
	}

	from := params.Date.Time.UTC()
	to := from.AddDate(0, 0, 1)

	entries, err := r.store.LogsBetween(c.Request().Context(), p.TenantID, from, to)
	if err != nil {
		return fmt.Errorf("daily log report: %w", err)
	}

	report := DailyReport{
		Date:       params.Date.String(),
		Total:      len(entries),
		ByCategory: make(map[care.LogCategory]int),
		Entries:    entries,
	}
	for _, e := range entries {
		report.ByCategory[e.Category]++
	}

	gate.SetTargetID(c, report.Date)
	gate.SetAuditDetails(c, map[string]any{"total": report.Total})

	return c.JSON(http.StatusOK, report)
}
