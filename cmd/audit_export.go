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

package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/audit/export"
	"github.com/carehome-io/carehome/internal/cli"
)

var (
	auditExportOutput    string
	auditExportType      string
	auditExportBatchSize int
	auditExportTenant    string
	auditExportCategory  []string
	auditExportSince     string
)

// auditExportCmd represents the auditExport command.
var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit log entries to a file",
	Long: `Export all audit log entries to a file for long-term retention.

Pages through the configured sink and writes each entry as a JSON line
(JSONL format). Use --tenant, --category, and --since to narrow the run.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		var exporter export.Exporter
		switch auditExportType {
		case "file":
			exporter = export.NewFileExporter(appFs, auditExportOutput)
		default:
			cli.LogFatal(
				logger,
				"unsupported export type",
				fmt.Errorf("type %q is not supported, use \"file\"", auditExportType),
			)
		}

		opts, err := buildExportOptions()
		if err != nil {
			cli.LogFatal(logger, "invalid export filter", err)
		}
		opts.OnProgress = func(exported int, scanned int, total int) {
			logger.Debug(
				"export progress",
				slog.Int("exported", exported),
				slog.Int("scanned", scanned),
				slog.Int("total", total),
			)
		}

		store, closeSink := openAuditStore(ctx, logger)
		defer closeSink(ctx)

		result, err := export.Run(
			ctx,
			logger,
			export.StoreFetcher(store, auditExportTenant),
			exporter,
			opts,
		)
		if err != nil {
			cli.LogFatal(logger, "export failed", err)
		}

		fmt.Println()
		cli.PrintKV(
			"Exported", strconv.Itoa(result.ExportedEntries),
			"Skipped", strconv.Itoa(result.SkippedEntries),
			"Total", strconv.Itoa(result.TotalEntries),
		)
		cli.PrintKV("Output", auditExportOutput)
	},
}

// buildExportOptions turns the command flags into export options. --since
// accepts a duration such as 720h or an RFC 3339 timestamp.
func buildExportOptions() (export.Options, error) {
	opts := export.Options{
		BatchSize: auditExportBatchSize,
		TenantID:  auditExportTenant,
	}

	for _, c := range auditExportCategory {
		opts.Categories = append(opts.Categories, audit.Category(c))
	}

	if auditExportSince == "" {
		return opts, nil
	}

	if d, err := time.ParseDuration(auditExportSince); err == nil {
		opts.Since = time.Now().Add(-d)
		return opts, nil
	}

	t, err := time.Parse(time.RFC3339, auditExportSince)
	if err != nil {
		return opts, fmt.Errorf("since %q is neither a duration nor RFC 3339", auditExportSince)
	}
	opts.Since = t

	return opts, nil
}

func init() {
	auditCmd.AddCommand(auditExportCmd)
	auditExportCmd.Flags().
		StringVar(&auditExportOutput, "output", "", "Output file path (required)")
	auditExportCmd.Flags().
		StringVar(&auditExportType, "type", "file", "Export backend type")
	auditExportCmd.Flags().
		IntVar(&auditExportBatchSize, "batch-size", 100, "Entries fetched per page")
	auditExportCmd.Flags().
		StringVar(&auditExportTenant, "tenant", "", "Only export entries for this care home")
	auditExportCmd.Flags().
		StringSliceVar(&auditExportCategory, "category", nil, "Only export these categories")
	auditExportCmd.Flags().
		StringVar(&auditExportSince, "since", "", "Only export entries newer than a duration or timestamp")
	_ = auditExportCmd.MarkFlagRequired("output")
}
