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

package audit_test

import (
	"context"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/api/gate"
	auditstore "github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/principal"
)

type fakeStore struct {
	// Write
	writeErr error

	// Get
	getEntry *auditstore.Entry
	getErr   error

	// List
	listEntries []auditstore.Entry
	listTotal   int
	listErr     error
	listTenant  string
	listLimit   int
	listOffset  int

	// Ping
	pingErr error
}

func (f *fakeStore) Write(
	_ context.Context,
	_ auditstore.Entry,
) error {
	return f.writeErr
}

func (f *fakeStore) Get(
	_ context.Context,
	_ string,
) (*auditstore.Entry, error) {
	return f.getEntry, f.getErr
}

func (f *fakeStore) List(
	_ context.Context,
	tenantID string,
	limit int,
	offset int,
) ([]auditstore.Entry, int, error) {
	f.listTenant = tenantID
	f.listLimit = limit
	f.listOffset = offset
	return f.listEntries, f.listTotal, f.listErr
}

func (f *fakeStore) Ping(
	_ context.Context,
) error {
	return f.pingErr
}

func (f *fakeStore) reset() {
	*f = fakeStore{}
}

// newAuditorContext builds a request context for a tenant-1 admin.
func newAuditorContext(
	target string,
) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	gate.SetPrincipal(c, &principal.Principal{
		ID:       "admin-1",
		Role:     authtoken.RoleAdmin,
		TenantID: "tenant-1",
		Active:   true,
	})

	return c, rec
}
