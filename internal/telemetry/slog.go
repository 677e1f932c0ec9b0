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
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type actorKey struct{}

type actor struct {
	id     string
	tenant string
}

// WithActor returns ctx carrying the authenticated actor, so every log line
// written for the request names who it was for.
func WithActor(
	ctx context.Context,
	actorID string,
	tenantID string,
) context.Context {
	return context.WithValue(ctx, actorKey{}, actor{id: actorID, tenant: tenantID})
}

// contextHandler decorates records with request-scoped attributes found in
// the context: the active span and the authenticated actor.
type contextHandler struct {
	next slog.Handler
}

// NewTraceHandler wraps next so records logged with a request context gain
// trace_id, span_id, actor_id, and tenant_id where known.
func NewTraceHandler(
	next slog.Handler,
) slog.Handler {
	return &contextHandler{next: next}
}

func (h *contextHandler) Enabled(
	ctx context.Context,
	level slog.Level,
) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(
	ctx context.Context,
	record slog.Record,
) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	if a, ok := ctx.Value(actorKey{}).(actor); ok {
		record.AddAttrs(
			slog.String("actor_id", a.id),
			slog.String("tenant_id", a.tenant),
		)
	}

	return h.next.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(
	attrs []slog.Attr,
) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(
	name string,
) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name)}
}
