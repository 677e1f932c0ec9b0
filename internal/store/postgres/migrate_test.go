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

package postgres

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SplitStatementsTestSuite struct {
	suite.Suite
}

func (s *SplitStatementsTestSuite) TestSplitStatements() {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "empty body",
			body: "  \n",
			want: nil,
		},
		{
			name: "two statements",
			body: "create table a (id int);\ncreate index a_idx on a (id);\n",
			want: []string{"create table a (id int)", "create index a_idx on a (id)"},
		},
		{
			name: "semicolon inside literal",
			body: "insert into a values ('x;y'); select 1",
			want: []string{"insert into a values ('x;y')", "select 1"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, splitStatements(tt.body))
		})
	}
}

func (s *SplitStatementsTestSuite) TestEmbeddedMigrationsParse() {
	body, err := embeddedMigrations.ReadFile("migrations/0001_staff.up.sql")
	s.Require().NoError(err)

	stmts := splitStatements(string(body))
	s.Len(stmts, 2)
	s.Contains(stmts[0], "create table if not exists staff")
}

func TestSplitStatementsTestSuite(t *testing.T) {
	suite.Run(t, new(SplitStatementsTestSuite))
}
