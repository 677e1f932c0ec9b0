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

package telemetry_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/carehome-io/carehome/internal/telemetry"
)

type SlogPublicTestSuite struct {
	suite.Suite

	tracer trace.Tracer
	buf    *bytes.Buffer
	logger *slog.Logger
}

func (s *SlogPublicTestSuite) SetupTest() {
	s.tracer = sdktrace.NewTracerProvider().Tracer("carehome-test")
	s.buf = &bytes.Buffer{}
	s.logger = slog.New(telemetry.NewTraceHandler(
		slog.NewTextHandler(s.buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))
}

func (s *SlogPublicTestSuite) TestHandle() {
	tests := []struct {
		name        string
		ctx         func() (context.Context, func())
		contains    []string
		notContains []string
	}{
		{
			name: "when span and actor present adds all request attributes",
			ctx: func() (context.Context, func()) {
				ctx, span := s.tracer.Start(context.Background(), "GET /residents/:id")
				ctx = telemetry.WithActor(ctx, "user-alice", "home-1")

				return ctx, func() { span.End() }
			},
			contains: []string{
				"trace_id=",
				"span_id=",
				"actor_id=user-alice",
				"tenant_id=home-1",
			},
		},
		{
			name: "when only actor present omits trace fields",
			ctx: func() (context.Context, func()) {
				return telemetry.WithActor(context.Background(), "user-bob", "home-2"), func() {}
			},
			contains:    []string{"actor_id=user-bob", "tenant_id=home-2"},
			notContains: []string{"trace_id=", "span_id="},
		},
		{
			name: "when only span present omits actor fields",
			ctx: func() (context.Context, func()) {
				ctx, span := s.tracer.Start(context.Background(), "POST /auth/login")

				return ctx, func() { span.End() }
			},
			contains:    []string{"trace_id="},
			notContains: []string{"actor_id=", "tenant_id="},
		},
		{
			name: "when bare context adds nothing",
			ctx: func() (context.Context, func()) {
				return context.Background(), func() {}
			},
			notContains: []string{"trace_id=", "actor_id="},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.buf.Reset()
			ctx, done := tc.ctx()
			defer done()

			s.logger.InfoContext(ctx, "request handled")

			out := s.buf.String()
			for _, want := range tc.contains {
				s.Contains(out, want)
			}
			for _, unwanted := range tc.notContains {
				s.NotContains(out, unwanted)
			}
		})
	}
}

func (s *SlogPublicTestSuite) TestTraceIDMatchesActiveSpan() {
	ctx, span := s.tracer.Start(context.Background(), "audit.record")
	defer span.End()

	s.logger.DebugContext(ctx, "queued entry")

	s.Contains(s.buf.String(), span.SpanContext().TraceID().String())
	s.Contains(s.buf.String(), span.SpanContext().SpanID().String())
}

func (s *SlogPublicTestSuite) TestDerivedHandlersKeepDecorating() {
	tests := []struct {
		name   string
		derive func(*slog.Logger) *slog.Logger
		want   string
	}{
		{
			name: "with attrs",
			derive: func(l *slog.Logger) *slog.Logger {
				return l.With(slog.String("component", "gate"))
			},
			want: "component=gate",
		},
		{
			name: "with group",
			derive: func(l *slog.Logger) *slog.Logger {
				return l.WithGroup("audit")
			},
			want: "audit.outcome=deny",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.buf.Reset()
			ctx := telemetry.WithActor(context.Background(), "user-carol", "home-3")

			tc.derive(s.logger).InfoContext(ctx, "decision", slog.String("outcome", "deny"))

			s.Contains(s.buf.String(), tc.want)
			s.Contains(s.buf.String(), "user-carol")
		})
	}
}

func (s *SlogPublicTestSuite) TestEnabledFollowsWrappedLevel() {
	h := telemetry.NewTraceHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)

	s.False(h.Enabled(context.Background(), slog.LevelInfo))
	s.True(h.Enabled(context.Background(), slog.LevelError))
}

func TestSlogPublicTestSuite(t *testing.T) {
	suite.Run(t, new(SlogPublicTestSuite))
}
