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
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/authz"
	staffstore "github.com/carehome-io/carehome/internal/staff"
)

// New creates the staff handlers.
func New(
	logger *slog.Logger,
	store staffstore.Store,
	now func() time.Time,
) *Staff {
	if now == nil {
		now = time.Now
	}

	return &Staff{
		logger: logger,
		store:  store,
		now:    now,
	}
}

// Lookup is the gate owner lookup for /staff/:id routes. Staff records are
// owned by the tenant, so only escalated roles pass the ownership check.
func (s *Staff) Lookup(
	c echo.Context,
) (*authz.Resource, error) {
	rec, err := s.store.FindByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, staffstore.ErrNotFound) {
		return nil, gate.ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load staff: %w", err)
	}
	c.Set(contextKeyRecord, rec)

	return &authz.Resource{TenantID: rec.TenantID}, nil
}

func recordFrom(
	c echo.Context,
) *staffstore.Record {
	rec, _ := c.Get(contextKeyRecord).(*staffstore.Record)
	return rec
}
