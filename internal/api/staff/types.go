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

// Package staff provides the staff administration handlers.
package staff

import (
	"log/slog"
	"time"

	staffstore "github.com/carehome-io/carehome/internal/staff"
)

// Staff implements the staff administration endpoints.
type Staff struct {
	logger *slog.Logger
	store  staffstore.Store
	now    func() time.Time
}

// CreateRequest is the body of POST /staff.
type CreateRequest struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Name     string `json:"name"     validate:"required,max=200"`
	Role     string `json:"role"     validate:"required,staff_role"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// StatusRequest is the body of PUT /staff/:id/status.
type StatusRequest struct {
	Active *bool `json:"active" validate:"required"`
	Unlock bool  `json:"unlock"`
}

// contextKeyRecord holds the record loaded by the owner lookup.
const contextKeyRecord = "staff.record"
