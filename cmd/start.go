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
	"github.com/spf13/cobra"

	"github.com/carehome-io/carehome/internal/cli"
	"github.com/carehome-io/carehome/internal/telemetry"
)

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the embedded NATS server and the API server",
	Long: `Start the embedded NATS server, then the API server against it.
On shutdown the API stops first so pending audit entries reach the bucket.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		providers, err := telemetry.Setup(ctx, "carehome", appConfig.Telemetry)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize telemetry", err)
		}

		natsServer := setupNATSServer(logger)
		natsServer.Start()

		sm, cleanup := setupAPIServer(ctx, logger, providers)
		sm.Start()

		// The API and its audit sink shut down before NATS goes away.
		cli.RunServer(ctx, cli.Composite{
			natsServer,
			cli.WithCleanup(sm, cleanup...),
		})
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
