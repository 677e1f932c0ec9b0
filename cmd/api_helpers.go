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

package cmd

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/carehome-io/carehome/internal/api"
	"github.com/carehome-io/carehome/internal/api/auth"
	"github.com/carehome-io/carehome/internal/api/health"
	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/care"
	"github.com/carehome-io/carehome/internal/cli"
	"github.com/carehome-io/carehome/internal/config"
	"github.com/carehome-io/carehome/internal/principal"
	"github.com/carehome-io/carehome/internal/ratelimit"
	"github.com/carehome-io/carehome/internal/staff"
	"github.com/carehome-io/carehome/internal/store/postgres"
	"github.com/carehome-io/carehome/internal/telemetry"
)

// ServerManager responsible for Server operations.
type ServerManager interface {
	cli.Lifecycle
	// GetAuthHandler returns login, refresh, and password handlers.
	GetAuthHandler(
		issuer auth.TokenIssuer,
		resolver auth.RefreshResolver,
		store staff.Store,
		limiter ratelimit.Limiter,
	) []func(e *echo.Echo)
	// GetStaffHandler returns staff administration handlers.
	GetStaffHandler(store staff.Store) []func(e *echo.Echo)
	// GetResidentHandler returns resident and care record handlers.
	GetResidentHandler(store care.Store) []func(e *echo.Echo)
	// GetWebhookHandler returns third-party callback handlers.
	GetWebhookHandler() []func(e *echo.Echo)
	// GetAuditHandler returns audit handler for registration.
	GetAuditHandler(store audit.Store) []func(e *echo.Echo)
	// GetHealthHandler returns health handler for registration.
	GetHealthHandler(
		checker health.Checker,
		startTime time.Time,
		version string,
	) []func(e *echo.Echo)
	// GetMetricsHandler returns Prometheus metrics handler for registration.
	GetMetricsHandler(metricsHandler http.Handler, path string) []func(e *echo.Echo)
	// RegisterHandlers registers a list of handlers with the Echo instance.
	RegisterHandlers(handlers []func(e *echo.Echo))
}

// setupAPIServer opens every backing store, builds the authorization gate,
// and registers all handlers. The returned cleanups run after the server
// stops, draining the audit queue before its sink is closed.
func setupAPIServer(
	ctx context.Context,
	log *slog.Logger,
	providers *telemetry.Providers,
) (ServerManager, []func(context.Context)) {
	db := openDatabase(ctx, log)
	staffStore := staff.NewPGStore(db)
	careStore := care.NewPGStore(db)

	auditStore, closeSink := openAuditStore(ctx, log)
	recorder := audit.NewRecorder(log, auditStore, audit.RecorderOptions{
		QueueSize: appConfig.Audit.QueueSize,
	})

	limiter, closeLimiter := newLimiter(log)

	codec := newTokenCodec(log)
	resolver := principal.NewResolver(log, codec, staffStore, nil)

	sm := api.New(appConfig, log, api.WithAuthorization(resolver, recorder))

	checker := &health.StoreChecker{
		StaffCheck: staffStore.Ping,
		AuditCheck: recorder.Ping,
	}

	handlers := make([]func(e *echo.Echo), 0, 16)
	handlers = append(handlers, sm.GetAuthHandler(codec, resolver, staffStore, limiter)...)
	handlers = append(handlers, sm.GetStaffHandler(staffStore)...)
	handlers = append(handlers, sm.GetResidentHandler(careStore)...)
	handlers = append(handlers, sm.GetWebhookHandler()...)
	handlers = append(handlers, sm.GetAuditHandler(auditStore)...)
	handlers = append(
		handlers,
		sm.GetHealthHandler(checker, time.Now(), versionInfo().GitVersion)...)
	handlers = append(
		handlers,
		sm.GetMetricsHandler(providers.MetricsHandler, providers.MetricsPath)...)
	sm.RegisterHandlers(handlers)

	cleanup := []func(context.Context){
		func(ctx context.Context) {
			if err := recorder.Close(ctx); err != nil {
				log.Error("failed to drain audit queue", slog.String("error", err.Error()))
			}
		},
		closeSink,
		closeLimiter,
		func(context.Context) {
			if err := db.Close(); err != nil {
				log.Warn("failed to close database", slog.String("error", err.Error()))
			}
		},
		func(ctx context.Context) {
			if err := providers.Shutdown(ctx); err != nil {
				log.Warn("failed to shut down telemetry", slog.String("error", err.Error()))
			}
		},
	}

	return sm, cleanup
}

func openDatabase(
	ctx context.Context,
	log *slog.Logger,
) *sql.DB {
	db, err := postgres.Open(ctx, appConfig.Database)
	if err != nil {
		cli.LogFatal(log, "failed to open database", err)
	}

	return db
}

func newTokenCodec(
	log *slog.Logger,
) *authtoken.Token {
	security := appConfig.API.Server.Security

	return authtoken.New(log, authtoken.Options{
		SigningKey: security.SigningKey,
		AccessTTL:  config.ParseDuration(security.AccessTTL, authtoken.DefaultAccessTTL),
		RefreshTTL: config.ParseDuration(security.RefreshTTL, authtoken.DefaultRefreshTTL),
	})
}

// newLimiter picks the login rate limit backend. Redis shares counters
// across replicas; memory is per process.
func newLimiter(
	log *slog.Logger,
) (ratelimit.Limiter, func(context.Context)) {
	rl := appConfig.RateLimit

	if rl.Backend != "redis" {
		return ratelimit.NewMemoryLimiter(ratelimit.MemoryOptions{}), func(context.Context) {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rl.Redis.Addr,
		Password: rl.Redis.Password,
		DB:       rl.Redis.DB,
	})
	log.Info("using redis rate limiter", slog.String("addr", rl.Redis.Addr))

	return ratelimit.NewRedisLimiter(client, nil), func(context.Context) {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}
}
