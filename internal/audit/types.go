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

// Package audit records redacted, append-only compliance entries for every
// gated operation.
package audit

import (
	"context"
	"errors"
	"time"

	"github.com/carehome-io/carehome/internal/authtoken"
)

// ErrNotFound is returned by Store.Get when no entry has the given ID.
var ErrNotFound = errors.New("audit entry not found")

// ErrDuplicate is returned when a sink already holds an entry with the same
// ID. Entries are immutable once written.
var ErrDuplicate = errors.New("audit entry already exists")

// Outcome is the result of the audited operation.
type Outcome string

// Outcomes.
const (
	OutcomeAllow   Outcome = "allow"
	OutcomeDeny    Outcome = "deny"
	OutcomeError   Outcome = "error"
	OutcomeUnknown Outcome = "unknown"
)

// Category tags an entry so compliance reports can filter without parsing
// free text.
type Category string

// Categories.
const (
	CategoryAuthentication   Category = "authentication"
	CategoryResourceAccess   Category = "resource-access"
	CategoryResourceMutation Category = "resource-mutation"
	CategorySecurityDenial   Category = "security-denial"
	CategoryDomain           Category = "domain"
)

// RetentionClass drives how long downstream tooling keeps an entry.
type RetentionClass string

// Retention classes.
const (
	RetentionSecurity   RetentionClass = "security"
	RetentionCareRecord RetentionClass = "care-record"
)

// RetentionFor maps a category to its retention class.
func RetentionFor(
	c Category,
) RetentionClass {
	switch c {
	case CategoryAuthentication, CategorySecurityDenial:
		return RetentionSecurity
	default:
		return RetentionCareRecord
	}
}

// Event describes something to audit. Details are redacted before the
// entry is built.
type Event struct {
	ActorID    string
	ActorRole  authtoken.Role
	TenantID   string
	Action     string
	TargetType string
	TargetID   string
	Outcome    Outcome
	Reason     authtoken.ReasonCode
	Category   Category
	RequestID  string
	SourceIP   string
	Details    map[string]any
}

// Entry is the persisted audit record. Field names are a stable contract
// for compliance consumers.
type Entry struct {
	// ID is a ULID, so lexical order is insertion order.
	ID             string               `json:"id"`
	Timestamp      time.Time            `json:"timestamp"`
	ActorID        string               `json:"actorId"`
	ActorRole      authtoken.Role       `json:"actorRole"`
	TenantID       string               `json:"tenantId"`
	Action         string               `json:"action"`
	TargetType     string               `json:"targetType"`
	TargetID       string               `json:"targetId"`
	Outcome        Outcome              `json:"outcome"`
	ReasonCode     authtoken.ReasonCode `json:"reasonCode,omitempty"`
	Category       Category             `json:"category"`
	RetentionClass RetentionClass       `json:"retentionClass"`
	RequestID      string               `json:"requestId,omitempty"`
	SourceIP       string               `json:"sourceIp,omitempty"`
	// RedactedDetails is the event detail payload after redaction.
	RedactedDetails map[string]any `json:"redactedDetails,omitempty"`
}

// Store is an append-only sink for audit entries.
type Store interface {
	// Write appends an entry.
	Write(ctx context.Context, entry Entry) error
	// Get returns one entry by ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Entry, error)
	// List returns entries newest first with the total count. A non-empty
	// tenantID scopes both the page and the total to that tenant.
	List(ctx context.Context, tenantID string, limit int, offset int) ([]Entry, int, error)
	// Ping reports whether the sink is reachable.
	Ping(ctx context.Context) error
}
