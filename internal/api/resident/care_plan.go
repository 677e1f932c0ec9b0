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
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/care"
	"github.com/carehome-io/carehome/internal/validation"
)

// GetCarePlan returns the resident's current care plan version.
func (r *Resident) GetCarePlan(
	c echo.Context,
) error {
	plan, err := r.store.CurrentCarePlan(c.Request().Context(), residentFrom(c).ID)
	if errors.Is(err, care.ErrNotFound) {
		return gate.NotFound(c)
	}
	if err != nil {
		return fmt.Errorf("get care plan: %w", err)
	}

	gate.SetAuditDetails(c, map[string]any{"version": plan.Version})

	return c.JSON(http.StatusOK, plan)
}

// PutCarePlan stores a new care plan version. Earlier versions are kept.
func (r *Resident) PutCarePlan(
	c echo.Context,
) error {
	p := gate.PrincipalFrom(c)
	res := residentFrom(c)

	var req CarePlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid request body"})
	}

	plan := &care.CarePlan{
		ResidentID:   res.ID,
		TenantID:     res.TenantID,
		AuthorID:     p.ID,
		Goals:        req.Goals,
		Instructions: req.Instructions,
		CreatedAt:    r.now().UTC(),
	}
	if errMsg, ok := validation.Struct(plan); !ok {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: errMsg})
	}

	ctx := c.Request().Context()
	if err := r.store.SaveCarePlan(ctx, plan); err != nil {
		if errors.Is(err, care.ErrVersionConflict) {
			return c.JSON(http.StatusConflict, gate.ErrorResponse{Error: "care plan changed concurrently"})
		}
		return fmt.Errorf("save care plan: %w", err)
	}

	gate.SetAuditDetails(c, map[string]any{
		"version": plan.Version,
		"goals":   len(plan.Goals),
	})
	r.recordVersioned(ctx, c, plan)

	return c.JSON(http.StatusOK, plan)
}

// recordVersioned writes the domain event compliance reports use to
// reconstruct plan history.
func (r *Resident) recordVersioned(
	ctx context.Context,
	c echo.Context,
	plan *care.CarePlan,
) {
	p := gate.PrincipalFrom(c)

	ev := gate.NewEvent(c, "care-plan.versioned", "care-plan", audit.CategoryDomain)
	ev.ActorID = p.ID
	ev.ActorRole = p.Role
	ev.TenantID = p.TenantID
	ev.TargetID = plan.ResidentID
	ev.Outcome = audit.OutcomeAllow
	ev.Details = map[string]any{"version": plan.Version}

	r.recorder.Record(ctx, ev)
}
