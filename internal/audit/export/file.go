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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/carehome-io/carehome/internal/audit"
)

// marshalJSON is swapped in tests to exercise encode failures.
var marshalJSON = json.Marshal

// MarshalJSONFunc returns the current marshaller for test inspection.
func MarshalJSONFunc() func(any) ([]byte, error) {
	return marshalJSON
}

// SetMarshalJSONFunc replaces the marshaller. Used by tests.
func SetMarshalJSONFunc(
	fn func(any) ([]byte, error),
) {
	marshalJSON = fn
}

var errNotOpened = errors.New("exporter not opened")

// FileExporter writes entries as JSON lines. Output goes to Path+".partial"
// and is renamed onto Path only when Close succeeds, so a failed run never
// leaves a truncated export where a retention job would pick it up.
type FileExporter struct {
	Path   string
	fs     afero.Fs
	file   io.WriteCloser
	writer *bufio.Writer
}

// NewFileExporter creates a FileExporter for path on fs.
func NewFileExporter(
	fs afero.Fs,
	path string,
) *FileExporter {
	return &FileExporter{
		Path: path,
		fs:   fs,
	}
}

func (e *FileExporter) partialPath() string {
	return e.Path + ".partial"
}

// Open creates the staging file, truncating any left by an earlier crash.
func (e *FileExporter) Open(
	_ context.Context,
) error {
	f, err := e.fs.OpenFile(e.partialPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}

	e.file = f
	e.writer = bufio.NewWriter(f)

	return nil
}

// Write appends one entry as a line of JSON.
func (e *FileExporter) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	if e.writer == nil {
		return errNotOpened
	}

	line, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}

	if _, err := e.writer.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing entry %s: %w", entry.ID, err)
	}

	return nil
}

// Close flushes the staging file and publishes it at Path.
func (e *FileExporter) Close(
	_ context.Context,
) error {
	if e.writer == nil {
		return errNotOpened
	}
	defer e.reset()

	if err := e.writer.Flush(); err != nil {
		_ = e.file.Close()
		return fmt.Errorf("flushing export: %w", err)
	}

	if err := e.file.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}

	if err := e.fs.Rename(e.partialPath(), e.Path); err != nil {
		return fmt.Errorf("publishing export: %w", err)
	}

	return nil
}

// Abort discards the staging file. Path is left untouched.
func (e *FileExporter) Abort(
	_ context.Context,
) error {
	if e.writer == nil {
		return errNotOpened
	}
	defer e.reset()

	_ = e.file.Close()
	if err := e.fs.Remove(e.partialPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing partial export: %w", err)
	}

	return nil
}

func (e *FileExporter) reset() {
	e.file = nil
	e.writer = nil
}
