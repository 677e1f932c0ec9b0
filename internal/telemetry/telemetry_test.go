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
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/carehome-io/carehome/internal/config"
)

// discardClient accepts and drops every OTLP upload.
type discardClient struct{}

func (discardClient) Start(context.Context) error { return nil }
func (discardClient) Stop(context.Context) error  { return nil }
func (discardClient) UploadTraces(context.Context, []*tracepb.ResourceSpans) error {
	return nil
}

type InitTracerTestSuite struct {
	suite.Suite

	ctx context.Context
}

func (s *InitTracerTestSuite) SetupTest() {
	s.ctx = context.Background()
}

// stubConstructors lets fn replace the constructors and returns a func that
// puts the real ones back.
func stubConstructors(
	fn func(),
) func() {
	res, std, otlp := resourceNewFn, stdouttraceNewFn, otlptraceNewFn
	fn()

	return func() {
		resourceNewFn, stdouttraceNewFn, otlptraceNewFn = res, std, otlp
	}
}

func (s *InitTracerTestSuite) TestConstructorFailures() {
	tests := []struct {
		name    string
		cfg     config.TracingConfig
		stub    func()
		wantErr string
	}{
		{
			name: "when resource fails",
			cfg:  config.TracingConfig{Enabled: true, Environment: "staging"},
			stub: func() {
				resourceNewFn = func(context.Context, ...resource.Option) (*resource.Resource, error) {
					return nil, errors.New("detector panic")
				}
			},
			wantErr: "creating resource: detector panic",
		},
		{
			name: "when stdout exporter fails",
			cfg:  config.TracingConfig{Enabled: true, Exporter: "stdout"},
			stub: func() {
				stdouttraceNewFn = func(...stdouttrace.Option) (*stdouttrace.Exporter, error) {
					return nil, errors.New("stdout closed")
				}
			},
			wantErr: "creating stdout exporter: stdout closed",
		},
		{
			name: "when otlp exporter fails",
			cfg: config.TracingConfig{
				Enabled:      true,
				Exporter:     "otlp",
				OTLPEndpoint: "collector.carehome.internal:4317",
			},
			stub: func() {
				otlptraceNewFn = func(context.Context, ...otlptracegrpc.Option) (*otlptrace.Exporter, error) {
					return nil, errors.New("bad endpoint")
				}
			},
			wantErr: "creating OTLP exporter: bad endpoint",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			defer stubConstructors(tc.stub)()

			shutdown, err := InitTracer(s.ctx, "carehome-api", tc.cfg)

			s.EqualError(err, tc.wantErr)
			s.Nil(shutdown)
		})
	}
}

func (s *InitTracerTestSuite) TestOTLPExporterProducesSpans() {
	defer stubConstructors(func() {
		otlptraceNewFn = func(context.Context, ...otlptracegrpc.Option) (*otlptrace.Exporter, error) {
			return otlptrace.NewUnstarted(discardClient{}), nil
		}
	})()

	shutdown, err := InitTracer(s.ctx, "carehome-api", config.TracingConfig{
		Enabled:  true,
		Exporter: "otlp",
	})
	s.Require().NoError(err)

	_, span := otel.Tracer("gate").Start(s.ctx, "authorize")
	s.True(span.SpanContext().IsSampled())
	span.End()

	s.NoError(shutdown(s.ctx))
}

func (s *InitTracerTestSuite) TestNewSampler() {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{name: "when zero samples everything", ratio: 0, want: "AlwaysOnSampler"},
		{name: "when one samples everything", ratio: 1, want: "AlwaysOnSampler"},
		{name: "when fractional uses ratio", ratio: 0.25, want: "TraceIDRatioBased{0.25}"},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			desc := newSampler(tc.ratio).Description()

			s.Contains(desc, "ParentBased")
			s.Contains(desc, tc.want)
		})
	}
}

func TestInitTracerTestSuite(t *testing.T) {
	suite.Run(t, new(InitTracerTestSuite))
}
