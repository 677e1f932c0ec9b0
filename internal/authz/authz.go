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

// Package authz combines the static capability table with resource
// ownership into a single allow or deny decision.
package authz

import (
	"time"

	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/principal"
)

// Requirement is what a route declares it needs. An empty Capability skips
// the capability check; Ownership enables the ownership check.
type Requirement struct {
	Capability authtoken.Capability
	Ownership  bool
}

// Resource is the tenant and owners of the record a request targets.
type Resource struct {
	TenantID string
	OwnerIDs []string
}

// Decision is the ephemeral result of one evaluation.
type Decision struct {
	Allowed bool
	Reason  authtoken.ReasonCode
}

// Allow is the positive decision.
var Allow = Decision{Allowed: true}

func deny(
	reason authtoken.ReasonCode,
) Decision {
	return Decision{Reason: reason}
}

// OwnsOrEscalated reports whether p owns the resource or holds a role at or
// above the escalation threshold. Tenant equality is not checked here.
func OwnsOrEscalated(
	p *principal.Principal,
	ownerIDs ...string,
) bool {
	if p.Role.AtLeast(authtoken.EscalationRole) {
		return true
	}

	for _, id := range ownerIDs {
		if id != "" && id == p.ID {
			return true
		}
	}

	return false
}

// Evaluate decides whether p may perform an action with requirement req on
// res. res may be nil for routes that do not target a single record.
func Evaluate(
	p *principal.Principal,
	req Requirement,
	res *Resource,
	now time.Time,
) Decision {
	if p == nil {
		return deny(authtoken.ReasonPrincipalUnknown)
	}
	if !p.Active {
		return deny(authtoken.ReasonAccountInactive)
	}
	if p.LockedAt(now) {
		return deny(authtoken.ReasonAccountLocked)
	}

	if req.Capability != "" && !authtoken.HasCapability(p.Role, req.Capability) {
		return deny(authtoken.ReasonRoleInsufficient)
	}

	if res != nil && res.TenantID != p.TenantID {
		return deny(authtoken.ReasonResourceNotOwned)
	}

	if req.Ownership {
		if res == nil || !OwnsOrEscalated(p, res.OwnerIDs...) {
			return deny(authtoken.ReasonResourceNotOwned)
		}
	}

	return Allow
}
