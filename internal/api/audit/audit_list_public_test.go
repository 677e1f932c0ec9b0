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
	"time"

	"github.com/stretchr/testify/suite"

	auditapi "github.com/carehome-io/carehome/internal/api/audit"
	auditstore "github.com/carehome-io/carehome/internal/audit"
)

type AuditListPublicTestSuite struct {
	suite.Suite

	handler *auditapi.Audit
	store   *fakeStore
}

func (s *AuditListPublicTestSuite) SetupTest() {
	s.store = &fakeStore{}
	s.handler = auditapi.New(slog.New(slog.NewTextHandler(io.Discard, nil)), s.store)
}

func (s *AuditListPublicTestSuite) TestGetAuditLogs() {
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		target       string
		setupStore   func()
		wantCode     int
		validateFunc func(body []byte)
	}{
		{
			name:   "returns entries successfully",
			target: "/audit?limit=10&offset=0",
			setupStore: func() {
				s.store.listEntries = []auditstore.Entry{
					{
						ID:        "01J0000000000000000000000A",
						Timestamp: ts,
						ActorID:   "carer-1",
						TenantID:  "tenant-1",
						Action:    "resident.view",
						Outcome:   auditstore.OutcomeAllow,
						Category:  auditstore.CategoryResourceAccess,
					},
				}
				s.store.listTotal = 1
			},
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var r auditapi.ListResponse
				s.Require().NoError(json.Unmarshal(body, &r))
				s.Equal(1, r.TotalItems)
				s.Require().Len(r.Items, 1)
				s.Equal("carer-1", r.Items[0].ActorID)
				s.Equal(10, s.store.listLimit)
				s.Equal(0, s.store.listOffset)
			},
		},
		{
			name:   "scopes the query to the caller tenant",
			target: "/audit?limit=1",
			setupStore: func() {
				s.store.listEntries = []auditstore.Entry{
					{ID: "01J0000000000000000000000A", TenantID: "tenant-1", ActorID: "carer-1"},
				}
				s.store.listTotal = 3
			},
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var r auditapi.ListResponse
				s.Require().NoError(json.Unmarshal(body, &r))
				s.Equal("tenant-1", s.store.listTenant)
				s.Equal(3, r.TotalItems)
				s.Require().Len(r.Items, 1)
				s.Equal("carer-1", r.Items[0].ActorID)
			},
		},
		{
			name:   "applies default paging",
			target: "/audit",
			setupStore: func() {
				s.store.listEntries = []auditstore.Entry{}
			},
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				s.JSONEq(`{"total_items":0,"items":[]}`, string(body))
				s.Equal(20, s.store.listLimit)
				s.Equal(0, s.store.listOffset)
			},
		},
		{
			name:       "returns 400 when limit is zero",
			target:     "/audit?limit=0",
			setupStore: func() {},
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "returns 400 when limit exceeds max",
			target:     "/audit?limit=200",
			setupStore: func() {},
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "returns 400 when offset is negative",
			target:     "/audit?offset=-1",
			setupStore: func() {},
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "returns 400 when limit is not a number",
			target:     "/audit?limit=ten",
			setupStore: func() {},
			wantCode:   http.StatusBadRequest,
		},
		{
			name:   "returns 500 on store error",
			target: "/audit",
			setupStore: func() {
				s.store.listErr = fmt.Errorf("store error")
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.store.reset()
			tt.setupStore()
			c, rec := newAuditorContext(tt.target)

			s.NoError(s.handler.GetAuditLogs(c))
			s.Equal(tt.wantCode, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.Bytes())
			}
		})
	}
}

func TestAuditListPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuditListPublicTestSuite))
}
