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

package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/afero"
)

// ensure FileStore implements Store at compile time.
var _ Store = (*FileStore)(nil)

// FileStore implements Store as an append-only JSON lines file.
type FileStore struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFileStore creates a FileStore writing to path on fs.
func NewFileStore(
	logger *slog.Logger,
	fs afero.Fs,
	path string,
) *FileStore {
	return &FileStore{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

// Write appends entry as a single line.
func (s *FileStore) Write(
	_ context.Context,
	entry Entry,
) error {
	data, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}

	f, err := s.fs.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("append audit entry: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close audit file: %w", err)
	}

	return nil
}

// Get scans the file for the entry with id.
func (s *FileStore) Get(
	ctx context.Context,
	id string,
) (*Entry, error) {
	entries, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}

	return nil, ErrNotFound
}

// List returns entries newest first with pagination.
func (s *FileStore) List(
	ctx context.Context,
	tenantID string,
	limit int,
	offset int,
) ([]Entry, int, error) {
	entries, err := s.readAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	if tenantID != "" {
		entries = slices.DeleteFunc(entries, func(e Entry) bool {
			return e.TenantID != tenantID
		})
	}

	total := len(entries)
	if offset >= total {
		return []Entry{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]Entry, 0, end-offset)
	for i := offset; i < end; i++ {
		page = append(page, entries[total-1-i])
	}

	return page, total, nil
}

// Ping checks that the audit directory is writable.
func (s *FileStore) Ping(
	_ context.Context,
) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("audit directory: %w", err)
	}

	return nil
}

// readAll returns entries in file (insertion) order. Lines that do not
// decode are skipped with a warning.
func (s *FileStore) readAll(
	_ context.Context,
) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.fs.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("open audit file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			s.logger.Warn(
				"failed to unmarshal audit line",
				slog.String("path", s.path),
				slog.Int("line", line),
				slog.String("error", err.Error()),
			)
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit file: %w", err)
	}

	return entries, nil
}
