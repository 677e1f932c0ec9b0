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

package cli

import (
	"context"
	"time"
)

// ShutdownTimeout bounds how long RunServer waits for a graceful stop.
const ShutdownTimeout = 10 * time.Second

// Lifecycle represents a long-running server.
type Lifecycle interface {
	// Start starts the server without blocking.
	Start()
	// Stop gracefully shuts down the server.
	Stop(ctx context.Context)
}

// Composite starts components in order and stops them in reverse, so a
// component is stopped before the ones it depends on.
type Composite []Lifecycle

// Start starts every component in order.
func (c Composite) Start() {
	for _, comp := range c {
		comp.Start()
	}
}

// Stop stops every component in reverse order.
func (c Composite) Stop(
	ctx context.Context,
) {
	for i := len(c) - 1; i >= 0; i-- {
		c[i].Stop(ctx)
	}
}

// RunServer blocks until ctx is cancelled, then shuts down the server and
// runs cleanup functions with the same shutdown deadline. Cleanups run
// after the server so in-flight requests can still record audit entries.
func RunServer(
	ctx context.Context,
	server Lifecycle,
	cleanupFns ...func(context.Context),
) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		ShutdownTimeout,
	)
	defer cancel()

	server.Stop(shutdownCtx)

	for _, fn := range cleanupFns {
		fn(shutdownCtx)
	}
}

type withCleanup struct {
	Lifecycle
	cleanupFns []func(context.Context)
}

// WithCleanup wraps server so that Stop runs cleanupFns once the server
// has stopped. Inside a Composite this keeps a component's cleanup ahead
// of the components started before it.
func WithCleanup(
	server Lifecycle,
	cleanupFns ...func(context.Context),
) Lifecycle {
	return &withCleanup{
		Lifecycle:  server,
		cleanupFns: cleanupFns,
	}
}

func (w *withCleanup) Stop(
	ctx context.Context,
) {
	w.Lifecycle.Stop(ctx)

	for _, fn := range w.cleanupFns {
		fn(ctx)
	}
}
