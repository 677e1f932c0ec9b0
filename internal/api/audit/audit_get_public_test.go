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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/suite"

	auditapi "github.com/carehome-io/carehome/internal/api/audit"
	auditstore "github.com/carehome-io/carehome/internal/audit"
)

type AuditGetPublicTestSuite struct {
	suite.Suite

	handler *auditapi.Audit
	store   *fakeStore
}

func (s *AuditGetPublicTestSuite) SetupTest() {
	s.store = &fakeStore{}
	s.handler = auditapi.New(slog.New(slog.NewTextHandler(io.Discard, nil)), s.store)
}

func (s *AuditGetPublicTestSuite) TestGetAuditLogByID() {
	testID := ulid.Make().String()

	tests := []struct {
		name         string
		setupStore   func()
		wantCode     int
		validateFunc func(body []byte)
	}{
		{
			name: "returns entry successfully",
			setupStore: func() {
				s.store.getEntry = &auditstore.Entry{
					ID:       testID,
					ActorID:  "carer-1",
					TenantID: "tenant-1",
					Action:   "care-log.create",
				}
			},
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var r auditapi.EntryResponse
				s.Require().NoError(json.Unmarshal(body, &r))
				s.Equal(testID, r.Entry.ID)
				s.Equal("carer-1", r.Entry.ActorID)
			},
		},
		{
			name: "returns 404 for another tenant's entry",
			setupStore: func() {
				s.store.getEntry = &auditstore.Entry{
					ID:       testID,
					TenantID: "tenant-2",
				}
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "returns 404 when not found",
			setupStore: func() {
				s.store.getErr = fmt.Errorf("get audit entry: %w", auditstore.ErrNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "returns 500 on store error",
			setupStore: func() {
				s.store.getErr = fmt.Errorf("connection error")
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.store.reset()
			tt.setupStore()
			c, rec := newAuditorContext("/audit/" + testID)
			c.SetParamNames("id")
			c.SetParamValues(testID)

			s.NoError(s.handler.GetAuditLogByID(c))
			s.Equal(tt.wantCode, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.Bytes())
			}
		})
	}
}

func TestAuditGetPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuditGetPublicTestSuite))
}
