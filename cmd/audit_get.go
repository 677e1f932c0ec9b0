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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/cli"
)

// auditGetCmd represents the auditGet command.
var auditGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one audit entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, closeSink := openAuditStore(ctx, logger)
		defer closeSink(ctx)

		entry, err := store.Get(ctx, args[0])
		if errors.Is(err, audit.ErrNotFound) {
			cli.LogFatal(logger, "audit entry not found", err, "id", args[0])
		}
		if err != nil {
			cli.LogFatal(logger, "failed to get audit entry", err)
		}

		if jsonOutput {
			out, _ := json.Marshal(entry)
			fmt.Println(string(out))
			return
		}

		cli.DisplayAuditEntry(entry)
	},
}

func init() {
	auditCmd.AddCommand(auditGetCmd)
}
