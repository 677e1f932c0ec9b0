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

package api

import (
	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/api/resident"
	"github.com/carehome-io/carehome/internal/care"
)

// GetResidentHandler returns the care record handlers and the daily report.
func (s *Server) GetResidentHandler(
	store care.Store,
) []func(e *echo.Echo) {
	residentHandler := resident.New(s.logger, store, s.recorder, s.now)
	owned := func(route gate.Route) echo.MiddlewareFunc {
		return s.gate.Protect(withOwner(route, residentHandler.Lookup))
	}

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group("/residents")
			g.GET("", residentHandler.GetResidents, s.gate.Protect(routeResidentList))
			g.POST("", residentHandler.PostResident, s.gate.Protect(routeResidentCreate))
			g.GET("/:id", residentHandler.GetResident, owned(routeResidentView))
			g.POST("/:id/logs", residentHandler.PostLog, owned(routeLogCreate))
			g.GET("/:id/logs", residentHandler.GetLogs, owned(routeLogList))
			g.GET("/:id/care-plan", residentHandler.GetCarePlan, owned(routeCarePlanView))
			g.PUT("/:id/care-plan", residentHandler.PutCarePlan, owned(routeCarePlanUpdate))

			e.GET("/reports/daily-logs", residentHandler.GetDailyLogReport,
				s.gate.Protect(routeDailyLogReport))
		},
	}
}
