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

// Package audit serves the audit trail to compliance readers.
package audit

import (
	"log/slog"

	auditstore "github.com/carehome-io/carehome/internal/audit"
)

const (
	defaultLimit = 20
)

// Audit implements the audit read endpoints.
type Audit struct {
	// Store is the audit sink being read.
	Store  auditstore.Store
	logger *slog.Logger
}

// ListParams are the query parameters of GET /audit.
type ListParams struct {
	Limit  *int `validate:"omitempty,min=1,max=100"`
	Offset *int `validate:"omitempty,min=0"`
}

// ListResponse is one page of entries visible to the caller.
type ListResponse struct {
	// TotalItems counts every entry in the sink, across tenants.
	TotalItems int                `json:"total_items"`
	Items      []auditstore.Entry `json:"items"`
}

// EntryResponse wraps a single entry.
type EntryResponse struct {
	Entry auditstore.Entry `json:"entry"`
}
