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

// Package webhook accepts inbound third-party callbacks. Callbacks are
// inert: they are authenticated, audited and acknowledged.
package webhook

import (
	"log/slog"

	"github.com/carehome-io/carehome/internal/api/gate"
)

// Source names a third-party system allowed to call back.
type Source string

// Known sources.
const (
	SourceAICallback Source = "ai-callback"
	SourceGPSystem   Source = "gp-system"
	SourcePharmacy   Source = "pharmacy"
)

// HeaderSecret carries the per-source shared secret.
const HeaderSecret = "X-Webhook-Secret"

// Webhook implements POST /webhooks/:source.
type Webhook struct {
	logger   *slog.Logger
	secrets  map[Source]string
	recorder gate.Recorder
}

// AcceptedResponse is the body returned for an accepted callback.
type AcceptedResponse struct {
	Status string `json:"status"`
}

// sourceParams is validated before any secret is compared.
type sourceParams struct {
	Source string `validate:"required,webhook_source"`
}
