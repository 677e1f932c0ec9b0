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

package webhook

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/config"
	"github.com/carehome-io/carehome/internal/validation"
)

func init() {
	validation.RegisterEnum(
		"webhook_source",
		string(SourceAICallback),
		string(SourceGPSystem),
		string(SourcePharmacy),
	)
}

// New creates the webhook handler from the configured secrets.
func New(
	logger *slog.Logger,
	secrets config.Webhooks,
	recorder gate.Recorder,
) *Webhook {
	return &Webhook{
		logger: logger.With(slog.String("component", "webhook")),
		secrets: map[Source]string{
			SourceAICallback: secrets.AICallback,
			SourceGPSystem:   secrets.GPSystem,
			SourcePharmacy:   secrets.Pharmacy,
		},
		recorder: recorder,
	}
}

// PostWebhook authenticates and records one callback.
func (w *Webhook) PostWebhook(
	c echo.Context,
) error {
	params := sourceParams{Source: c.Param("source")}
	if _, ok := validation.Struct(params); !ok {
		return gate.NotFound(c)
	}
	source := Source(params.Source)
	ctx := c.Request().Context()

	ev := gate.NewEvent(c, "webhook."+string(source)+".received", "webhook", audit.CategoryAuthentication)
	ev.ActorID = "webhook:" + string(source)
	ev.TargetID = string(source)

	if !w.authorized(source, c.Request().Header.Get(HeaderSecret)) {
		w.logger.Warn(
			"webhook rejected",
			slog.String("source", string(source)),
			slog.String("source_ip", c.RealIP()),
		)
		ev.Outcome = audit.OutcomeDeny
		ev.Reason = authtoken.ReasonBadCredentials
		w.recorder.Record(ctx, ev)

		return gate.Unauthorized(c)
	}

	payload := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &payload); err != nil {
		ev.Outcome = audit.OutcomeError
		ev.Reason = authtoken.ReasonHandlerError
		w.recorder.Record(ctx, ev)

		return c.JSON(http.StatusBadRequest, gate.ErrorResponse{Error: "invalid request body"})
	}

	tenantID, _ := payload["tenantId"].(string)
	ev.TenantID = tenantID
	ev.Outcome = audit.OutcomeAllow
	ev.Details = payload
	w.recorder.Record(ctx, ev)

	if source == SourcePharmacy {
		alert := gate.NewEvent(c, "medication-alert.received", "medication-alert", audit.CategoryDomain)
		alert.ActorID = ev.ActorID
		alert.TenantID = tenantID
		alert.TargetID, _ = payload["alertId"].(string)
		alert.Outcome = audit.OutcomeAllow
		alert.Details = payload
		w.recorder.Record(ctx, alert)
	}

	return c.JSON(http.StatusAccepted, AcceptedResponse{Status: "accepted"})
}

// authorized compares in constant time. A source with no configured
// secret accepts nothing.
func (w *Webhook) authorized(
	source Source,
	presented string,
) bool {
	want := w.secrets[source]
	if want == "" || presented == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(want), []byte(presented)) == 1
}
