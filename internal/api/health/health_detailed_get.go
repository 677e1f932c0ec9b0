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

package health

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GetHealthDetailed returns per-component health status (authenticated).
func (h *Health) GetHealthDetailed(
	c echo.Context,
) error {
	checker, ok := h.Checker.(*StoreChecker)
	if !ok {
		return h.buildDetailedResponse(c, nil, nil)
	}

	ctx := c.Request().Context()

	return h.buildDetailedResponse(c, checker.CheckStaff(ctx), checker.CheckAudit(ctx))
}

// buildDetailedResponse constructs the detailed health response from component checks.
func (h *Health) buildDetailedResponse(
	c echo.Context,
	staffErr error,
	auditErr error,
) error {
	uptime := time.Since(h.StartTime).Round(time.Second).String()
	components := map[string]ComponentHealth{
		"staff": component(staffErr),
		"audit": component(auditErr),
	}

	resp := DetailedHealthResponse{
		Status:     "ok",
		Components: components,
		Version:    h.Version,
		Uptime:     uptime,
	}

	if staffErr != nil || auditErr != nil {
		resp.Status = "degraded"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	return c.JSON(http.StatusOK, resp)
}

func component(
	err error,
) ComponentHealth {
	if err == nil {
		return ComponentHealth{Status: "ok"}
	}

	errMsg := err.Error()

	return ComponentHealth{Status: "error", Error: &errMsg}
}
