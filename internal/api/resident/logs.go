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

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/care"
	"github.com/carehome-io/carehome/internal/validation"
)

// PostLog appends a daily care log to the resident.
func (r *Resident) PostLog(
	c echo.Context,
) error {
	p := gate.PrincipalFrom(c)
	res := residentFrom(c)

	var req LogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid request body"})
	}

	entry := &care.LogEntry{
		ID:         uuid.NewString(),
		TenantID:   res.TenantID,
		ResidentID: res.ID,
		AuthorID:   p.ID,
		Category:   req.Category,
		Note:       req.Note,
		RecordedAt: r.now().UTC(),
	}
	if errMsg, ok := validation.Struct(entry); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	gate.SetAuditDetails(c, map[string]any{
		"logId":    entry.ID,
		"category": string(entry.Category),
	})

	if err := r.store.AddLog(c.Request().Context(), entry); err != nil {
		return fmt.Errorf("add care log: %w", err)
	}

	return c.JSON(http.StatusCreated, entry)
}

// GetLogs returns the resident's most recent logs.
func (r *Resident) GetLogs(
	c echo.Context,
) error {
	var params ListLogsParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &params.Limit); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid limit"})
	}
	if errMsg, ok := validation.Struct(params); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	limit := defaultLogLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	logs, err := r.store.ListLogs(c.Request().Context(), residentFrom(c).ID, limit)
	if err != nil {
		return fmt.Errorf("list care logs: %w", err)
	}

	return c.JSON(http.StatusOK, logs)
}
