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

	"github.com/carehome-io/carehome/internal/api/auth"
	"github.com/carehome-io/carehome/internal/config"
	"github.com/carehome-io/carehome/internal/ratelimit"
	"github.com/carehome-io/carehome/internal/staff"
)

// GetAuthHandler returns the login, refresh and password handlers. Login
// and refresh are rate limited per client IP when limiter is non-nil.
func (s *Server) GetAuthHandler(
	issuer auth.TokenIssuer,
	resolver auth.RefreshResolver,
	store staff.Store,
	limiter ratelimit.Limiter,
) []func(e *echo.Echo) {
	security := s.appConfig.API.Server.Security
	authHandler := auth.New(s.logger, issuer, resolver, store, s.recorder, auth.Options{
		MaxFailedLogins: security.MaxFailedLogins,
		LockoutDuration: config.ParseDuration(security.LockoutDuration, auth.DefaultLockoutDuration),
		Now:             s.now,
	})

	var public []echo.MiddlewareFunc
	if limiter != nil {
		rl := s.appConfig.RateLimit
		requests := rl.Requests
		if requests <= 0 {
			requests = ratelimit.DefaultRequests
		}
		public = append(public, ratelimit.Middleware(
			s.logger,
			limiter,
			requests,
			config.ParseDuration(rl.Window, ratelimit.DefaultWindow),
		))
	}

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group("/auth")
			g.POST("/login", authHandler.PostLogin, public...)
			g.POST("/refresh", authHandler.PostRefresh, public...)
			g.POST("/password", authHandler.PostPassword, s.gate.Protect(routePasswordChange))
		},
	}
}
