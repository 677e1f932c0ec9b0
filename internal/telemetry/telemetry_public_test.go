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
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/carehome-io/carehome/internal/config"
	"github.com/carehome-io/carehome/internal/telemetry"
)

type InitTracerPublicTestSuite struct {
	suite.Suite

	ctx context.Context
}

func (s *InitTracerPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *InitTracerPublicTestSuite) TestInitTracer() {
	tests := []struct {
		name      string
		cfg       config.TracingConfig
		wantErr   string
		wantValid bool
	}{
		{
			name: "when disabled spans are not recorded",
			cfg:  config.TracingConfig{Exporter: "otlp"},
		},
		{
			name:      "when enabled without exporter spans still carry ids",
			cfg:       config.TracingConfig{Enabled: true, Exporter: "none"},
			wantValid: true,
		},
		{
			name: "when stdout with environment",
			cfg: config.TracingConfig{
				Enabled:     true,
				Exporter:    "stdout",
				Environment: "production",
				SampleRatio: 0.5,
			},
			wantValid: true,
		},
		{
			name:    "when exporter unknown",
			cfg:     config.TracingConfig{Enabled: true, Exporter: "jaeger"},
			wantErr: `unsupported tracing exporter: "jaeger"`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			shutdown, err := telemetry.InitTracer(s.ctx, "carehome-api", tc.cfg)
			if tc.wantErr != "" {
				s.EqualError(err, tc.wantErr)
				return
			}
			s.Require().NoError(err)

			_, span := otel.Tracer("gate").Start(s.ctx, "authorize")
			s.Equal(tc.wantValid, span.SpanContext().IsValid())
			span.End()

			s.NoError(shutdown(s.ctx))
		})
	}
}

func (s *InitTracerPublicTestSuite) TestPropagatorHonoursInboundTraceparent() {
	shutdown, err := telemetry.InitTracer(s.ctx, "carehome-api", config.TracingConfig{})
	s.Require().NoError(err)
	defer func() { _ = shutdown(s.ctx) }()

	h := http.Header{}
	h.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	h.Set("baggage", "tenant=home-1")

	ctx := otel.GetTextMapPropagator().Extract(s.ctx, propagation.HeaderCarrier(h))

	out := http.Header{}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out))
	s.Contains(out.Get("traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")
	s.Equal("tenant=home-1", out.Get("baggage"))
}

func TestInitTracerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(InitTracerPublicTestSuite))
}
