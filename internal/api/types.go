// Copyright (c) 2024 John Dewey

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
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/config"
)

// Server implementation of the Server.
type Server struct {
	// Echo the HTTP server.
	Echo      *echo.Echo
	logger    *slog.Logger
	appConfig config.Config
	gate      *gate.Gate
	recorder  gate.Recorder
	now       func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithAuthorization installs the request gate. Every protected handler
// group requires it.
func WithAuthorization(
	resolver gate.PrincipalResolver,
	recorder gate.Recorder,
) Option {
	return func(s *Server) {
		s.recorder = recorder
		s.gate = gate.New(s.logger, resolver, recorder, s.now)
	}
}

// WithClock overrides the time source. It must precede WithAuthorization.
func WithClock(
	now func() time.Time,
) Option {
	return func(s *Server) {
		s.now = now
	}
}
