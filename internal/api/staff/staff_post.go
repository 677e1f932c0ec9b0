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
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/authtoken"
	staffstore "github.com/carehome-io/carehome/internal/staff"
	"github.com/carehome-io/carehome/internal/validation"
)

// PostStaff creates a staff account in the caller's tenant.
func (s *Staff) PostStaff(
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

	hash, err := staffstore.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: err.Error()})
	}

	now := s.now()
	rec := &staffstore.Record{
		ID:                  uuid.NewString(),
		TenantID:            p.TenantID,
		Email:               strings.ToLower(req.Email),
		Name:                req.Name,
		Role:                authtoken.Role(req.Role),
		Active:              true,
		PasswordHash:        hash,
		CredentialChangedAt: now,
		CreatedAt:           now,
	}

	gate.SetTargetID(c, rec.ID)
	gate.SetAuditDetails(c, map[string]any{"role": req.Role})

	if err := s.store.Create(c.Request().Context(), rec); err != nil {
		if errors.Is(err, staffstore.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, gate.ErrorResponse{Error: "email already registered"})
		}
		return fmt.Errorf("create staff: %w", err)
	}

	return c.JSON(http.StatusCreated, rec)
}
