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

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/care"
	"github.com/carehome-io/carehome/internal/validation"
)

// PostResident admits a resident to the caller's tenant.
func (r *Resident) PostResident(
	c echo.Context,
) error {
	p := gate.PrincipalFrom(c)

	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid request body"})
	}
	if errMsg, ok := validation.Struct(req); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	res := &care.Resident{
		ID:               uuid.NewString(),
		TenantID:         p.TenantID,
		Name:             req.Name,
		Room:             req.Room,
		KeyWorkerID:      req.KeyWorkerID,
		AssignedStaffIDs: req.AssignedStaffIDs,
		NHSNumber:        req.NHSNumber,
		MedicalHistory:   req.MedicalHistory,
		EmergencyContact: req.EmergencyContact,
		CreatedAt:        r.now().UTC(),
	}
	if res.AssignedStaffIDs == nil {
		res.AssignedStaffIDs = []string{}
	}

	gate.SetTargetID(c, res.ID)
	gate.SetAuditDetails(c, map[string]any{
		"room":          res.Room,
		"keyWorkerId":   res.KeyWorkerID,
		"assignedStaff": len(res.AssignedStaffIDs),
	})

	if err := r.store.CreateResident(c.Request().Context(), res); err != nil {
		return fmt.Errorf("create resident: %w", err)
	}

	return c.JSON(http.StatusCreated, res)
}
