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

package audit_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"

	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
)

type KVStoreIntegrationTestSuite struct {
	suite.Suite

	ns    *server.Server
	nc    *nats.Conn
	store *audit.KVStore
}

func (s *KVStoreIntegrationTestSuite) SetupTest() {
	ns, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      server.RANDOM_PORT,
		JetStream: true,
		StoreDir:  s.T().TempDir(),
		NoLog:     true,
		NoSigs:    true,
	})
	s.Require().NoError(err)

	ns.Start()
	s.Require().True(ns.ReadyForConnections(5 * time.Second))
	s.ns = ns

	nc, err := nats.Connect(ns.ClientURL())
	s.Require().NoError(err)
	s.nc = nc

	js, err := nc.JetStream()
	s.Require().NoError(err)

	kv, err := js.CreateKeyValue(&nats.KeyValueConfig{
		Bucket:  "audit-log",
		Storage: nats.MemoryStorage,
	})
	s.Require().NoError(err)

	s.store = audit.NewKVStore(slog.Default(), kv)
}

func (s *KVStoreIntegrationTestSuite) TearDownTest() {
	s.nc.Close()
	s.ns.Shutdown()
	s.ns.WaitForShutdown()
}

func (s *KVStoreIntegrationTestSuite) TestRecorderRoundTrip() {
	ctx := context.Background()
	r := audit.NewRecorder(slog.Default(), s.store, audit.RecorderOptions{})

	for _, action := range []string{"first", "second", "third"} {
		r.Record(ctx, audit.Event{
			ActorID:   "staff-1",
			ActorRole: authtoken.RoleStaff,
			TenantID:  "tenant-1",
			Action:    action,
			Outcome:   audit.OutcomeAllow,
			Category:  audit.CategoryResourceAccess,
			Details:   map[string]any{"password": "hunter22"},
		})
	}

	entries, total, err := s.store.List(ctx, "", 10, 0)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(entries, 3)
	s.Equal("third", entries[0].Action)
	s.Equal("first", entries[2].Action)
	s.Equal(audit.RedactedValue, entries[0].RedactedDetails["password"])

	got, err := s.store.Get(ctx, entries[1].ID)
	s.Require().NoError(err)
	s.Equal("second", got.Action)

	_, err = s.store.Get(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	s.ErrorIs(err, audit.ErrNotFound)

	s.NoError(s.store.Ping(ctx))
}

func (s *KVStoreIntegrationTestSuite) TestEmptyBucket() {
	entries, total, err := s.store.List(context.Background(), "", 10, 0)

	s.NoError(err)
	s.Equal(0, total)
	s.Empty(entries)
}

func TestKVStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded NATS test in short mode")
	}

	suite.Run(t, new(KVStoreIntegrationTestSuite))
}
