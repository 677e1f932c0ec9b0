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
	"context"

	"github.com/carehome-io/carehome/internal/audit"
)

// Fetcher returns one page of entries and the total count.
type Fetcher func(ctx context.Context, limit int, offset int) ([]audit.Entry, int, error)

// Exporter is a destination for exported entries.
type Exporter interface {
	Open(ctx context.Context) error
	Write(ctx context.Context, entry audit.Entry) error
	Close(ctx context.Context) error
}

// Aborter is implemented by exporters that can discard a failed run. Run
// calls Abort instead of Close when it returns an error.
type Aborter interface {
	Abort(ctx context.Context) error
}

// Result summarises an export run.
type Result struct {
	// TotalEntries is the sink's entry count when the run started paging.
	TotalEntries    int
	ScannedEntries  int
	SkippedEntries  int
	ExportedEntries int
}

// StoreFetcher adapts a Store's List to a Fetcher scoped to tenantID.
// An empty tenantID pages every tenant.
func StoreFetcher(
	store audit.Store,
	tenantID string,
) Fetcher {
	return func(ctx context.Context, limit int, offset int) ([]audit.Entry, int, error) {
		return store.List(ctx, tenantID, limit, offset)
	}
}
