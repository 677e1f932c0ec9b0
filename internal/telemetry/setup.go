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

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carehome-io/carehome/internal/config"
)

// Providers bundles the tracer and meter set up for one process.
type Providers struct {
	// MetricsHandler serves the Prometheus scrape endpoint.
	MetricsHandler http.Handler
	// MetricsPath is where MetricsHandler is mounted.
	MetricsPath string

	shutdowns []func(context.Context) error
}

// Setup initializes tracing then metrics. On error nothing is left running.
func Setup(
	ctx context.Context,
	serviceName string,
	cfg config.Telemetry,
) (*Providers, error) {
	traceShutdown, err := InitTracer(ctx, serviceName, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	handler, path, meterShutdown, err := InitMeter(cfg.Metrics)
	if err != nil {
		_ = traceShutdown(ctx)
		return nil, fmt.Errorf("metrics: %w", err)
	}

	return &Providers{
		MetricsHandler: handler,
		MetricsPath:    path,
		shutdowns:      []func(context.Context) error{meterShutdown, traceShutdown},
	}, nil
}

// Shutdown flushes and stops every provider, joining their errors.
func (p *Providers) Shutdown(
	ctx context.Context,
) error {
	var errs []error
	for _, fn := range p.shutdowns {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
