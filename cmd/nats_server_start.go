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
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carehome-io/carehome/internal/cli"
)

// natsServerStartCmd represents the natsServerStart command.
var natsServerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the embedded NATS server",
	Long: `Start a JetStream-enabled NATS server that holds the audit KV bucket.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		srv := setupNATSServer(logger)
		srv.Start()
		cli.RunServer(ctx, srv)
	},
}

func setupNATSServer(
	log *slog.Logger,
) *cli.EmbeddedNATS {
	srv, err := cli.NewEmbeddedNATS(log, appConfig.NATS.Server)
	if err != nil {
		cli.LogFatal(log, "failed to configure NATS server", err)
	}

	return srv
}

func init() {
	natsServerCmd.AddCommand(natsServerStartCmd)
}
