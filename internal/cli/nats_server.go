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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/carehome-io/carehome/internal/config"
)

// readyTimeout bounds how long Start waits for the server to accept clients.
const readyTimeout = 10 * time.Second

// EmbeddedNATS runs a JetStream-enabled NATS server in process. It backs
// the audit KV bucket when no external cluster is configured.
type EmbeddedNATS struct {
	logger *slog.Logger
	srv    *server.Server
}

// NewEmbeddedNATS configures, but does not start, the embedded server.
func NewEmbeddedNATS(
	logger *slog.Logger,
	serverCfg config.NATSServer,
) (*EmbeddedNATS, error) {
	opts := &server.Options{
		ServerName: "carehome",
		Host:       serverCfg.Host,
		Port:       serverCfg.Port,
		JetStream:  true,
		StoreDir:   serverCfg.StoreDir,
		Username:   serverCfg.Username,
		Password:   serverCfg.Password,
		NoSigs:     true,
		NoLog:      true,
	}

	srv, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("configure nats server: %w", err)
	}

	return &EmbeddedNATS{
		logger: logger,
		srv:    srv,
	}, nil
}

// Start starts the server and waits until it accepts connections.
func (n *EmbeddedNATS) Start() {
	n.srv.Start()

	if !n.srv.ReadyForConnections(readyTimeout) {
		n.logger.Error("nats server not ready", slog.Duration("timeout", readyTimeout))
		return
	}

	n.logger.Info("nats server started", slog.String("url", n.srv.ClientURL()))
}

// Stop shuts the server down, giving up when ctx expires.
func (n *EmbeddedNATS) Stop(
	ctx context.Context,
) {
	n.logger.Info("stopping nats server")
	n.srv.Shutdown()

	done := make(chan struct{})
	go func() {
		n.srv.WaitForShutdown()
		close(done)
	}()

	select {
	case <-done:
		n.logger.Info("nats server stopped")
	case <-ctx.Done():
		n.logger.Error("nats server shutdown timed out", slog.String("error", ctx.Err().Error()))
	}
}

// ClientURL is the URL clients dial.
func (n *EmbeddedNATS) ClientURL() string {
	return n.srv.ClientURL()
}
