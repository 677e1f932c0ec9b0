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
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/validation"
)

// GetAuditLogs returns one page of the caller's tenant entries newest first.
func (a *Audit) GetAuditLogs(
	c echo.Context,
) error {
	var params ListParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &params.Limit); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid limit"})
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", c.QueryParams(), &params.Offset); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid offset"})
	}
	if errMsg, ok := validation.Struct(params); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	limit := defaultLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	offset := 0
	if params.Offset != nil {
		offset = *params.Offset
	}

	tenantID := gate.PrincipalFrom(c).TenantID
	items, total, err := a.Store.List(c.Request().Context(), tenantID, limit, offset)
	if err != nil {
		a.logger.Error(
			"failed to list audit entries",
			slog.String("error", err.Error()),
		)
		return c.JSON(http.StatusInternalServerError, gate.ErrorResponse{Error: "failed to list audit entries"})
	}

	gate.SetAuditDetails(c, map[string]any{
		"limit":  limit,
		"offset": offset,
		"count":  len(items),
	})

	return c.JSON(http.StatusOK, ListResponse{
		TotalItems: total,
		Items:      items,
	})
}
