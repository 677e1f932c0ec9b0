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
	"context"
	"log/slog"

	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/cli"
)

// defaultAuditFile is the JSON lines sink path when none is configured.
const defaultAuditFile = "/var/lib/carehome/audit.jsonl"

// openAuditStore opens the configured audit sink. The NATS sink is the
// default; "file" appends JSON lines on the local filesystem.
func openAuditStore(
	_ context.Context,
	log *slog.Logger,
) (audit.Store, func(context.Context)) {
	if appConfig.Audit.Sink == "file" {
		path := appConfig.Audit.File.Path
		if path == "" {
			path = defaultAuditFile
		}
		log.Info("using file audit sink", slog.String("path", path))

		return audit.NewFileStore(log, appFs, path), func(context.Context) {}
	}

	nc, err := cli.ConnectNATS(appConfig.NATS.Client)
	if err != nil {
		cli.LogFatal(log, "failed to connect to NATS", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		cli.LogFatal(log, "failed to create JetStream context", err)
	}

	kv, err := cli.OpenAuditBucket(js, appConfig.Audit.NATS)
	if err != nil {
		cli.LogFatal(log, "failed to open audit KV bucket", err)
	}
	log.Info("using nats audit sink", slog.String("bucket", kv.Bucket()))

	return audit.NewKVStore(log, kv), func(context.Context) {
		cli.CloseNATS(nc)
	}
}
