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

// Package gate is the per-route request pipeline: extract the bearer token,
// resolve the principal, evaluate the route's permission requirement, run
// the handler, and write exactly one audit record for the outcome.
package gate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/authz"
	"github.com/carehome-io/carehome/internal/principal"
)

// ErrResourceNotFound is returned by an OwnerLookup when the target does not
// exist.
var ErrResourceNotFound = errors.New("resource not found")

// Context keys used to pass gate state to handlers.
const (
	contextKeyPrincipal = "gate.principal"
	contextKeyDetails   = "gate.details"
	contextKeyTargetID  = "gate.target_id"
)

// Generic response bodies. Reasons never reach the client.
const (
	msgUnauthorized = "unauthorized"
	msgForbidden    = "forbidden"
	msgNotFound     = "not found"
	msgInternal     = "internal server error"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PrincipalResolver turns an access token into a live principal.
type PrincipalResolver interface {
	Resolve(
		ctx context.Context,
		accessToken string,
	) (*principal.Principal, error)
}

// Recorder appends audit events. It never fails the request.
type Recorder interface {
	Record(
		ctx context.Context,
		ev audit.Event,
	)
}

// OwnerLookup loads the target resource's tenant and owners. It returns
// ErrResourceNotFound when the target does not exist.
type OwnerLookup func(c echo.Context) (*authz.Resource, error)

// Route declares what a gated endpoint does and what it requires.
type Route struct {
	// Action is the audit action label, e.g. "resident.update".
	Action string
	// TargetType is the audited resource type, e.g. "resident".
	TargetType string
	// Capability the principal's role must hold.
	Capability authtoken.Capability
	// Owner, when set, makes the route require ownership or escalation.
	Owner OwnerLookup
	// Mutation marks the route as changing state for audit categorisation.
	Mutation bool
	// TargetParam is the path parameter holding the target id. Defaults to "id".
	TargetParam string
}

// Gate builds per-route middleware.
type Gate struct {
	logger   *slog.Logger
	resolver PrincipalResolver
	recorder Recorder
	now      func() time.Time
}
