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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/authz"
	"github.com/carehome-io/carehome/internal/care"
)

// New creates the care record handlers.
func New(
	logger *slog.Logger,
	store care.Store,
	recorder gate.Recorder,
	now func() time.Time,
) *Resident {
	if now == nil {
		now = time.Now
	}

	return &Resident{
		logger:   logger,
		store:    store,
		recorder: recorder,
		now:      now,
	}
}

// Lookup is the gate owner lookup for /residents/:id routes.
func (r *Resident) Lookup(
	c echo.Context,
) (*authz.Resource, error) {
	res, err := r.store.GetResident(c.Request().Context(), c.Param("id"))
	if errors.Is(err, care.ErrNotFound) {
		return nil, gate.ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load resident: %w", err)
	}
	c.Set(contextKeyResident, res)

	return &authz.Resource{
		TenantID: res.TenantID,
		OwnerIDs: res.OwnerIDs(),
	}, nil
}

func residentFrom(
	c echo.Context,
) *care.Resident {
	res, _ := c.Get(contextKeyResident).(*care.Resident)
	return res
}
