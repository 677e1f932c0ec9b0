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

package webhook_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/carehome-io/carehome/internal/api/webhook"
	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/config"
)

type WebhookPublicTestSuite struct {
	suite.Suite

	recorder *captureRecorder
	handler  *webhook.Webhook
}

func (s *WebhookPublicTestSuite) SetupTest() {
	s.recorder = &captureRecorder{}
	s.handler = webhook.New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		config.Webhooks{
			AICallback: "ai-secret",
			Pharmacy:   "pharmacy-secret",
		},
		s.recorder,
	)
}

func (s *WebhookPublicTestSuite) post(
	source string,
	secret string,
	body string,
) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/"+source, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if secret != "" {
		req.Header.Set(webhook.HeaderSecret, secret)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("source")
	c.SetParamValues(source)

	s.Require().NoError(s.handler.PostWebhook(c))

	return rec
}

func (s *WebhookPublicTestSuite) TestPostWebhook() {
	tests := []struct {
		name        string
		source      string
		secret      string
		body        string
		wantCode    int
		wantActions []string
		wantOutcome audit.Outcome
		wantReason  authtoken.ReasonCode
	}{
		{
			name:        "accepts a callback with the right secret",
			source:      "ai-callback",
			secret:      "ai-secret",
			body:        `{"tenantId":"tenant-1","summary":"ok"}`,
			wantCode:    http.StatusAccepted,
			wantActions: []string{"webhook.ai-callback.received"},
			wantOutcome: audit.OutcomeAllow,
		},
		{
			name:        "rejects a wrong secret",
			source:      "ai-callback",
			secret:      "ai-secreT",
			body:        `{}`,
			wantCode:    http.StatusUnauthorized,
			wantActions: []string{"webhook.ai-callback.received"},
			wantOutcome: audit.OutcomeDeny,
			wantReason:  authtoken.ReasonBadCredentials,
		},
		{
			name:        "rejects a missing secret",
			source:      "pharmacy",
			body:        `{}`,
			wantCode:    http.StatusUnauthorized,
			wantActions: []string{"webhook.pharmacy.received"},
			wantOutcome: audit.OutcomeDeny,
			wantReason:  authtoken.ReasonBadCredentials,
		},
		{
			name:        "rejects a source with no configured secret",
			source:      "gp-system",
			secret:      "anything",
			body:        `{}`,
			wantCode:    http.StatusUnauthorized,
			wantActions: []string{"webhook.gp-system.received"},
			wantOutcome: audit.OutcomeDeny,
			wantReason:  authtoken.ReasonBadCredentials,
		},
		{
			name:     "unknown source is not found and not audited",
			source:   "lab-results",
			secret:   "ai-secret",
			body:     `{}`,
			wantCode: http.StatusNotFound,
		},
		{
			name:        "malformed body is an error",
			source:      "ai-callback",
			secret:      "ai-secret",
			body:        `{"tenantId":`,
			wantCode:    http.StatusBadRequest,
			wantActions: []string{"webhook.ai-callback.received"},
			wantOutcome: audit.OutcomeError,
			wantReason:  authtoken.ReasonHandlerError,
		},
		{
			name:     "pharmacy alert also records a domain event",
			source:   "pharmacy",
			secret:   "pharmacy-secret",
			body:     `{"tenantId":"tenant-1","alertId":"alert-9","drug":"warfarin"}`,
			wantCode: http.StatusAccepted,
			wantActions: []string{
				"webhook.pharmacy.received",
				"medication-alert.received",
			},
			wantOutcome: audit.OutcomeAllow,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()

			rec := s.post(tc.source, tc.secret, tc.body)

			s.Equal(tc.wantCode, rec.Code)
			s.Require().Len(s.recorder.events, len(tc.wantActions))
			for i, action := range tc.wantActions {
				ev := s.recorder.events[i]
				s.Equal(action, ev.Action)
				s.Equal(tc.wantOutcome, ev.Outcome)
				s.Equal(tc.wantReason, ev.Reason)
				s.Equal("webhook:"+tc.source, ev.ActorID)
			}
		})
	}
}

func (s *WebhookPublicTestSuite) TestAcceptedEventsCarryPayload() {
	rec := s.post(
		"pharmacy",
		"pharmacy-secret",
		`{"tenantId":"tenant-1","alertId":"alert-9","drug":"warfarin"}`,
	)

	s.Equal(http.StatusAccepted, rec.Code)
	s.JSONEq(`{"status":"accepted"}`, rec.Body.String())
	s.Require().Len(s.recorder.events, 2)

	received := s.recorder.events[0]
	s.Equal(audit.CategoryAuthentication, received.Category)
	s.Equal("tenant-1", received.TenantID)
	s.Equal("warfarin", received.Details["drug"])

	alert := s.recorder.events[1]
	s.Equal(audit.CategoryDomain, alert.Category)
	s.Equal("medication-alert", alert.TargetType)
	s.Equal("alert-9", alert.TargetID)
	s.Equal("tenant-1", alert.TenantID)
}

func (s *WebhookPublicTestSuite) TestRejectedEventsDoNotCarryPayload() {
	rec := s.post("ai-callback", "wrong", `{"tenantId":"tenant-1","summary":"x"}`)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.JSONEq(`{"error":"unauthorized"}`, rec.Body.String())
	s.Require().Len(s.recorder.events, 1)
	s.Nil(s.recorder.events[0].Details)
	s.Empty(s.recorder.events[0].TenantID)
}

func TestWebhookPublicTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookPublicTestSuite))
}
