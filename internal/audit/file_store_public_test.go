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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/carehome-io/carehome/internal/audit"
)

type FileStorePublicTestSuite struct {
	suite.Suite

	fs    afero.Fs
	path  string
	store *audit.FileStore
	ctx   context.Context
}

func (s *FileStorePublicTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
	s.path = "/var/lib/carehome/audit/audit.jsonl"
	s.store = audit.NewFileStore(slog.Default(), s.fs, s.path)
	s.ctx = context.Background()
}

func (s *FileStorePublicTestSuite) write(
	ids ...string,
) {
	for _, id := range ids {
		s.Require().NoError(s.store.Write(s.ctx, audit.Entry{
			ID:       id,
			ActorID:  "staff-1",
			Action:   "resident.read",
			Outcome:  audit.OutcomeAllow,
			Category: audit.CategoryResourceAccess,
		}))
	}
}

func (s *FileStorePublicTestSuite) TestWriteAppendsLines() {
	s.write("a", "b")

	data, err := afero.ReadFile(s.fs, s.path)
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	s.Len(lines, 2)
	s.Contains(lines[0], `"id":"a"`)
	s.Contains(lines[0], `"actorId":"staff-1"`)
	s.Contains(lines[1], `"id":"b"`)
}

func (s *FileStorePublicTestSuite) TestWriteReadOnlyFs() {
	store := audit.NewFileStore(slog.Default(), afero.NewReadOnlyFs(s.fs), s.path)

	err := store.Write(s.ctx, audit.Entry{ID: "a"})
	s.Error(err)
}

func (s *FileStorePublicTestSuite) TestList() {
	tests := []struct {
		name      string
		ids       []string
		limit     int
		offset    int
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "empty when file is missing",
			limit:     10,
			wantIDs:   []string{},
			wantTotal: 0,
		},
		{
			name:      "newest first",
			ids:       []string{"a", "b", "c"},
			limit:     10,
			wantIDs:   []string{"c", "b", "a"},
			wantTotal: 3,
		},
		{
			name:      "paginates",
			ids:       []string{"a", "b", "c"},
			limit:     1,
			offset:    1,
			wantIDs:   []string{"b"},
			wantTotal: 3,
		},
		{
			name:      "offset past end",
			ids:       []string{"a"},
			limit:     10,
			offset:    5,
			wantIDs:   []string{},
			wantTotal: 1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.write(tt.ids...)

			entries, total, err := s.store.List(s.ctx, "", tt.limit, tt.offset)
			s.Require().NoError(err)
			s.Equal(tt.wantTotal, total)

			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			s.Equal(tt.wantIDs, ids)
		})
	}
}

func (s *FileStorePublicTestSuite) TestListScopesToTenant() {
	for i, tenant := range []string{"home-1", "home-2", "home-1", "home-2", "home-2", "home-2"} {
		s.Require().NoError(s.store.Write(s.ctx, audit.Entry{
			ID:       fmt.Sprintf("e%d", i),
			TenantID: tenant,
			Action:   "resident.read",
			Outcome:  audit.OutcomeAllow,
		}))
	}

	tests := []struct {
		name      string
		tenantID  string
		limit     int
		offset    int
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "page reaches past other tenants",
			tenantID:  "home-1",
			limit:     2,
			wantIDs:   []string{"e2", "e0"},
			wantTotal: 2,
		},
		{
			name:      "offset counts only tenant entries",
			tenantID:  "home-2",
			limit:     2,
			offset:    2,
			wantIDs:   []string{"e3", "e1"},
			wantTotal: 4,
		},
		{
			name:      "unknown tenant",
			tenantID:  "home-9",
			limit:     10,
			wantIDs:   []string{},
			wantTotal: 0,
		},
		{
			name:      "empty tenant lists all",
			limit:     1,
			wantIDs:   []string{"e5"},
			wantTotal: 6,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entries, total, err := s.store.List(s.ctx, tt.tenantID, tt.limit, tt.offset)
			s.Require().NoError(err)
			s.Equal(tt.wantTotal, total)

			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			s.Equal(tt.wantIDs, ids)
		})
	}
}

func (s *FileStorePublicTestSuite) TestListSkipsCorruptLines() {
	s.write("a")
	f, err := s.fs.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o640)
	s.Require().NoError(err)
	_, _ = f.WriteString("not-json\n")
	_ = f.Close()
	s.write("b")

	entries, total, err := s.store.List(s.ctx, "", 10, 0)
	s.NoError(err)
	s.Equal(2, total)
	s.Len(entries, 2)
}

func (s *FileStorePublicTestSuite) TestGet() {
	s.write("a", "b")

	got, err := s.store.Get(s.ctx, "b")
	s.Require().NoError(err)
	s.Equal("b", got.ID)

	_, err = s.store.Get(s.ctx, "missing")
	s.ErrorIs(err, audit.ErrNotFound)
}

func (s *FileStorePublicTestSuite) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}

func TestFileStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(FileStorePublicTestSuite))
}
