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

// Package cli provides shared utilities for CLI startup commands.
package cli

import (
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/carehome-io/carehome/internal/config"
)

// DefaultAuditBucket is used when no bucket is configured.
const DefaultAuditBucket = "carehome-audit"

// ParseJetstreamStorageType maps "memory"/"file" strings to nats.StorageType.
func ParseJetstreamStorageType(
	s string,
) nats.StorageType {
	if s == "memory" {
		return nats.MemoryStorage
	}

	return nats.FileStorage
}

// ConnectNATS dials the configured NATS server.
func ConnectNATS(
	connCfg config.NATSConnection,
) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(connCfg.ClientName),
		nats.MaxReconnects(-1),
	}
	if connCfg.Username != "" {
		opts = append(opts, nats.UserInfo(connCfg.Username, connCfg.Password))
	}

	url := fmt.Sprintf("nats://%s:%d", connCfg.Host, connCfg.Port)
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}

	return nc, nil
}

// CloseNATS drains then closes nc, ignoring a nil connection.
func CloseNATS(
	nc *nats.Conn,
) {
	if nc == nil {
		return
	}
	if err := nc.Drain(); err != nil {
		nc.Close()
	}
}

// BuildAuditKVConfig builds a KeyValueConfig from audit config values.
func BuildAuditKVConfig(
	auditCfg config.NATSAudit,
) *nats.KeyValueConfig {
	bucket := auditCfg.Bucket
	if bucket == "" {
		bucket = DefaultAuditBucket
	}

	replicas := auditCfg.Replicas
	if replicas <= 0 {
		replicas = 1
	}

	return &nats.KeyValueConfig{
		Bucket:      bucket,
		Description: "carehome audit trail",
		TTL:         config.ParseDuration(auditCfg.TTL, 0),
		MaxBytes:    auditCfg.MaxBytes,
		Storage:     ParseJetstreamStorageType(auditCfg.Storage),
		Replicas:    replicas,
	}
}

// OpenAuditBucket binds to the audit bucket, creating it on first use.
// An existing bucket keeps its settings.
func OpenAuditBucket(
	js nats.JetStreamContext,
	auditCfg config.NATSAudit,
) (nats.KeyValue, error) {
	kvCfg := BuildAuditKVConfig(auditCfg)

	kv, err := js.KeyValue(kvCfg.Bucket)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, nats.ErrBucketNotFound) {
		return nil, fmt.Errorf("bind audit bucket: %w", err)
	}

	kv, err = js.CreateKeyValue(kvCfg)
	if err != nil {
		return nil, fmt.Errorf("create audit bucket: %w", err)
	}

	return kv, nil
}
