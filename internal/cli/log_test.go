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

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LogTestSuite struct {
	suite.Suite

	buf      bytes.Buffer
	exitCode int
	restore  func()
}

func (suite *LogTestSuite) SetupTest() {
	suite.buf.Reset()
	suite.exitCode = -1

	prev := osExit
	osExit = func(code int) { suite.exitCode = code }
	suite.restore = func() { osExit = prev }
}

func (suite *LogTestSuite) TearDownTest() {
	suite.restore()
}

func TestLogTestSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) TestLogFatal() {
	tests := []struct {
		name    string
		msg     string
		err     error
		kvPairs []any
		want    map[string]any
		absent  []string
	}{
		{
			name: "when database unreachable records error",
			msg:  "failed to open database",
			err:  errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			want: map[string]any{
				"level": "ERROR",
				"msg":   "failed to open database",
				"error": "dial tcp 127.0.0.1:5432: connect: connection refused",
			},
		},
		{
			name:   "when no error omits error key",
			msg:    "signing key missing",
			want:   map[string]any{"msg": "signing key missing"},
			absent: []string{"error"},
		},
		{
			name:    "when context pairs given appends them",
			msg:     "unknown role",
			err:     errors.New("role must be staff, senior or admin"),
			kvPairs: []any{"role", "manager", slog.Int("attempt", 2)},
			want: map[string]any{
				"role":    "manager",
				"attempt": float64(2),
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.buf.Reset()
			logger := slog.New(slog.NewJSONHandler(&suite.buf, nil))

			LogFatal(logger, tc.msg, tc.err, tc.kvPairs...)

			suite.Equal(1, suite.exitCode)

			var record map[string]any
			suite.Require().NoError(json.Unmarshal(suite.buf.Bytes(), &record))
			for k, v := range tc.want {
				suite.Equal(v, record[k], k)
			}
			for _, k := range tc.absent {
				suite.NotContains(record, k)
			}
		})
	}
}
