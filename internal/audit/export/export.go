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

// Package export copies audit entries out of the live sink for long-term
// retention. Runs can be narrowed to one tenant, a set of categories, or a
// time window.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carehome-io/carehome/internal/audit"
)

// DefaultBatchSize is used when Options.BatchSize is not positive.
const DefaultBatchSize = 100

// ProgressFunc is called after each page with the running counts.
type ProgressFunc func(exported int, scanned int, total int)

// Options narrows and paces an export run.
type Options struct {
	BatchSize int
	// TenantID restricts the run to one care home.
	TenantID string
	// Categories restricts the run to the listed categories.
	Categories []audit.Category
	// Since drops entries older than this instant. Zero exports everything.
	Since      time.Time
	OnProgress ProgressFunc
}

func (o Options) matches(
	e audit.Entry,
) bool {
	if o.TenantID != "" && e.TenantID != o.TenantID {
		return false
	}

	if len(o.Categories) == 0 {
		return true
	}

	for _, c := range o.Categories {
		if e.Category == c {
			return true
		}
	}

	return false
}

// Run pages through the sink and writes every matching entry to exporter.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	fetcher Fetcher,
	exporter Exporter,
	opts Options,
) (result *Result, err error) {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	if err := exporter.Open(ctx); err != nil {
		return nil, fmt.Errorf("opening exporter: %w", err)
	}

	defer func() {
		if a, ok := exporter.(Aborter); ok && err != nil {
			if aerr := a.Abort(ctx); aerr != nil {
				logger.Error("aborting exporter", slog.String("error", aerr.Error()))
			}
			return
		}

		if cerr := exporter.Close(ctx); cerr != nil {
			if err == nil {
				err = fmt.Errorf("finalizing export: %w", cerr)
				return
			}
			logger.Error("closing exporter", slog.String("error", cerr.Error()))
		}
	}()

	result = &Result{}

	for offset := 0; ; {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		page, total, err := fetcher(ctx, batch, offset)
		if err != nil {
			return result, fmt.Errorf("fetching entries at offset %d: %w", offset, err)
		}
		result.TotalEntries = total

		done, err := writePage(ctx, exporter, page, opts, result)
		if err != nil {
			return result, err
		}

		if opts.OnProgress != nil {
			opts.OnProgress(result.ExportedEntries, result.ScannedEntries, total)
		}

		offset += len(page)
		if done || len(page) == 0 || offset >= total {
			break
		}
	}

	logger.Debug(
		"audit export finished",
		slog.Int("exported", result.ExportedEntries),
		slog.Int("skipped", result.SkippedEntries),
	)

	return result, nil
}

// writePage writes the matching entries of one page. It reports done once
// an entry older than opts.Since is seen, since the sink lists newest first.
func writePage(
	ctx context.Context,
	exporter Exporter,
	page []audit.Entry,
	opts Options,
	result *Result,
) (bool, error) {
	for _, entry := range page {
		if !opts.Since.IsZero() && entry.Timestamp.Before(opts.Since) {
			return true, nil
		}
		result.ScannedEntries++

		if !opts.matches(entry) {
			result.SkippedEntries++
			continue
		}

		if err := exporter.Write(ctx, entry); err != nil {
			return false, fmt.Errorf("writing entry %s: %w", entry.ID, err)
		}
		result.ExportedEntries++
	}

	return false, nil
}
