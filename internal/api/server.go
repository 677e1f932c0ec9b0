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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/config"
)

const bodyLimit = "1M"

// New initialize a new Server and configure an Echo server.
func New(
	appConfig config.Config,
	logger *slog.Logger,
	opts ...Option,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = newIPExtractor(logger, appConfig.API.Security.TrustedProxies)

	// Initialize CORS configuration
	corsConfig := middleware.CORSConfig{}

	allowOrigins := appConfig.API.Server.Security.CORS.AllowOrigins
	if len(allowOrigins) > 0 {
		corsConfig.AllowOrigins = allowOrigins
	}

	e.Use(otelecho.Middleware("carehome-api"))
	e.Use(middleware.RequestID())
	e.Use(slogecho.NewWithConfig(logger, slogecho.Config{
		WithRequestID: true,
		WithSpanID:    true,
		WithTraceID:   true,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(corsConfig))
	e.Use(middleware.BodyLimit(bodyLimit))

	s := &Server{
		Echo:      e,
		logger:    logger,
		appConfig: appConfig,
		now:       time.Now,
	}

	e.HTTPErrorHandler = s.errorHandler

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// newIPExtractor decides what c.RealIP reports, which keys rate limits and
// fills sourceIp on audit entries. Forwarding headers are only honoured
// from the configured proxy ranges.
func newIPExtractor(
	logger *slog.Logger,
	trusted []string,
) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trusted {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Warn("ignoring trusted proxy", slog.String("cidr", cidr), slog.String("error", err.Error()))
			continue
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}

	return echo.ExtractIPFromXFFHeader(opts...)
}

// errorHandler renders errors that escaped a handler as a generic JSON
// body. Internal detail goes to the log only.
func (s *Server) errorHandler(
	err error,
	c echo.Context,
) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}

	msg := strings.ToLower(http.StatusText(code))
	if code >= http.StatusInternalServerError {
		msg = "internal server error"
		s.logger.Error(
			"request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, gate.ErrorResponse{Error: msg})
	}
	if writeErr != nil {
		s.logger.Error("failed to write error response", slog.String("error", writeErr.Error()))
	}
}

// RegisterHandlers registers a list of handlers with the Echo instance.
func (s *Server) RegisterHandlers(
	handlers []func(e *echo.Echo),
) {
	for _, h := range handlers {
		h(s.Echo)
	}
}

// Start starts the Echo server with the configured port.
func (s *Server) Start() {
	go func() {
		s.logger.Info("starting server", slog.Int("port", s.appConfig.API.Port))
		listenAddr := fmt.Sprintf(":%d", s.appConfig.API.Port)
		if err := s.Echo.Start(listenAddr); err != nil && err != http.ErrServerClosed {
			s.logger.Error(
				"failed to start server",
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Stop gracefully shuts down the Echo server.
func (s *Server) Stop(
	ctx context.Context,
) {
	s.logger.Info("stopping server")

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.logger.Error(
			"server shutdown failed",
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.Info("server stopped gracefully")
	}
}
