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

package export

import (
	"bufio"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/carehome-io/carehome/internal/audit"
)

type FileInternalTestSuite struct {
	suite.Suite

	entry audit.Entry
}

func (s *FileInternalTestSuite) SetupTest() {
	s.entry = audit.Entry{
		ID:       "01JNZB4W8T6D3VQ2H7XKM5R9CE",
		ActorID:  "user-alice",
		TenantID: "home-1",
		Action:   "resident.read",
		Outcome:  audit.OutcomeAllow,
	}
}

func (s *FileInternalTestSuite) TestWriteNamesFailedEntry() {
	e := &FileExporter{writer: bufio.NewWriterSize(brokenFile{}, 16)}

	err := e.Write(context.Background(), s.entry)

	s.ErrorContains(err, "writing entry 01JNZB4W8T6D3VQ2H7XKM5R9CE")
}

func (s *FileInternalTestSuite) TestCloseFailures() {
	tests := []struct {
		name    string
		file    brokenFile
		buffer  bool
		wantErr string
	}{
		{
			name:    "when buffered data cannot flush",
			buffer:  true,
			wantErr: "flushing export",
		},
		{
			name:    "when file close fails",
			file:    brokenFile{closeErr: errors.New("bad descriptor")},
			wantErr: "closing export file: bad descriptor",
		},
		{
			name:    "when staging file vanished",
			wantErr: "publishing export",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			e := &FileExporter{
				Path:   "/exports/audit.jsonl",
				fs:     afero.NewMemMapFs(),
				file:   tc.file,
				writer: bufio.NewWriter(tc.file),
			}
			if tc.buffer {
				_, _ = e.writer.WriteString("pending")
			}

			s.ErrorContains(e.Close(context.Background()), tc.wantErr)
			s.Nil(e.writer, "exporter reset after close")
		})
	}
}

func TestFileInternalTestSuite(t *testing.T) {
	suite.Run(t, new(FileInternalTestSuite))
}

// brokenFile rejects every write.
type brokenFile struct {
	closeErr error
}

func (brokenFile) Write([]byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func (f brokenFile) Close() error {
	return f.closeErr
}
