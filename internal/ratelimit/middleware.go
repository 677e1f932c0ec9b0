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

package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Middleware limits each client address to limit requests per window on
// the routes it wraps. Limiter errors fail open.
func Middleware(
	logger *slog.Logger,
	limiter Limiter,
	limit int,
	window time.Duration,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil || limit <= 0 {
				return next(c)
			}

			key := c.Path() + "|" + c.RealIP()
			decision, err := limiter.Allow(c.Request().Context(), key, limit, window)
			if err != nil {
				logger.Warn(
					"rate limiter unavailable",
					slog.String("path", c.Path()),
					slog.String("error", err.Error()),
				)
				return next(c)
			}

			writeHeaders(c, decision, time.Now())
			if !decision.Allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}

			return next(c)
		}
	}
}

func writeHeaders(
	c echo.Context,
	d Decision,
	now time.Time,
) {
	h := c.Response().Header()
	h.Set("RateLimit-Limit", strconv.Itoa(d.Limit))
	h.Set("RateLimit-Remaining", strconv.Itoa(d.Remaining))
	if d.ResetAt.IsZero() {
		return
	}
	h.Set("RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	if !d.Allowed {
		retryAfter := max(int64(d.ResetAt.Sub(now).Seconds()), 0)
		h.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
	}
}
