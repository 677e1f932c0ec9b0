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
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/carehome-io/carehome/internal/cli"
)

var (
	auditListLimit  int
	auditListOffset int
	auditListTenant string
)

// auditListCmd represents the auditList command.
var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit entries, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		store, closeSink := openAuditStore(ctx, logger)
		defer closeSink(ctx)

		entries, total, err := store.List(ctx, auditListTenant, auditListLimit, auditListOffset)
		if err != nil {
			cli.LogFatal(logger, "failed to list audit entries", err)
		}

		if jsonOutput {
			out, _ := json.Marshal(map[string]any{
				"total_items": total,
				"items":       entries,
			})
			fmt.Println(string(out))
			return
		}

		fmt.Println()
		cli.PrintKV(
			"Showing", strconv.Itoa(len(entries)),
			"Total", strconv.Itoa(total),
		)

		if len(entries) == 0 {
			fmt.Println(cli.DimStyle.Render("  no audit entries"))
			return
		}

		headers, rows := cli.BuildAuditTable(entries, time.Now())
		cli.PrintStyledTable([]cli.Section{{
			Title:   "Audit Entries",
			Headers: headers,
			Rows:    rows,
		}})
	},
}

func init() {
	auditCmd.AddCommand(auditListCmd)

	auditListCmd.Flags().IntVar(&auditListLimit, "limit", 20, "Maximum entries to fetch")
	auditListCmd.Flags().IntVar(&auditListOffset, "offset", 0, "Entries to skip")
	auditListCmd.Flags().StringVar(&auditListTenant, "tenant", "", "Only show this tenant")
}
