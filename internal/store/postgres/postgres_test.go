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
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/carehome-io/carehome/internal/config"
)

type OpenTestSuite struct {
	suite.Suite
}

func (s *OpenTestSuite) TearDownTest() {
	sqlOpen = sql.Open
}

func (s *OpenTestSuite) TestOpen() {
	tests := []struct {
		name    string
		setup   func() sqlmock.Sqlmock
		wantErr string
	}{
		{
			name: "opens and pings",
			setup: func() sqlmock.Sqlmock {
				db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
				s.Require().NoError(err)
				mock.ExpectPing()
				sqlOpen = func(_, _ string) (*sql.DB, error) { return db, nil }
				return mock
			},
		},
		{
			name: "ping failure closes the pool",
			setup: func() sqlmock.Sqlmock {
				db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
				s.Require().NoError(err)
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectClose()
				sqlOpen = func(_, _ string) (*sql.DB, error) { return db, nil }
				return mock
			},
			wantErr: "ping database",
		},
		{
			name: "driver failure",
			setup: func() sqlmock.Sqlmock {
				sqlOpen = func(_, _ string) (*sql.DB, error) {
					return nil, fmt.Errorf("unknown driver")
				}
				return nil
			},
			wantErr: "open database",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			mock := tt.setup()

			db, err := Open(context.Background(), config.Database{DSN: "postgres://localhost/carehome"})

			if tt.wantErr != "" {
				s.Error(err)
				s.Contains(err.Error(), tt.wantErr)
				s.Nil(db)
			} else {
				s.NoError(err)
				s.NotNil(db)
			}

			if mock != nil {
				s.NoError(mock.ExpectationsWereMet())
			}
		})
	}
}

func TestOpenTestSuite(t *testing.T) {
	suite.Run(t, new(OpenTestSuite))
}
