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

package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nats-io/nats.go"
)

// marshalJSON is swapped in tests to exercise encode failures.
var marshalJSON = json.Marshal

var _ Store = (*KVStore)(nil)

// KeyValue is the subset of nats.KeyValue the audit store uses.
type KeyValue interface {
	Create(key string, value []byte) (uint64, error)
	Get(key string) (nats.KeyValueEntry, error)
	Keys(opts ...nats.WatchOpt) ([]string, error)
	Status() (nats.KeyValueStatus, error)
}

// KVStore keeps audit entries in a JetStream key-value bucket keyed by
// entry ID. Because IDs are ULIDs, reverse key order is newest first.
type KVStore struct {
	kv     KeyValue
	logger *slog.Logger
}

// NewKVStore creates a KVStore over kv.
func NewKVStore(
	logger *slog.Logger,
	kv KeyValue,
) *KVStore {
	return &KVStore{
		kv:     kv,
		logger: logger,
	}
}

// Write stores entry under its ID. Create rather than Put keeps entries
// immutable: a second write for the same ID fails with ErrDuplicate.
func (s *KVStore) Write(
	_ context.Context,
	entry Entry,
) error {
	data, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	if _, err := s.kv.Create(entry.ID, data); err != nil {
		if errors.Is(err, nats.ErrKeyExists) {
			return fmt.Errorf("%w: %s", ErrDuplicate, entry.ID)
		}
		return fmt.Errorf("create audit entry: %w", err)
	}

	return nil
}

// Get returns the entry stored under id.
func (s *KVStore) Get(
	_ context.Context,
	id string,
) (*Entry, error) {
	entry, err := s.load(id)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns one page of entries, newest first, and the bucket's total.
// Entries that fail to load are logged and left out of the page.
func (s *KVStore) List(
	_ context.Context,
	tenantID string,
	limit int,
	offset int,
) ([]Entry, int, error) {
	keys, err := s.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return []Entry{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list audit keys: %w", err)
	}

	slices.Sort(keys)
	slices.Reverse(keys)

	if tenantID != "" {
		entries, total := s.listTenant(keys, tenantID, limit, offset)
		return entries, total, nil
	}

	page := pageOf(keys, limit, offset)
	entries := make([]Entry, 0, len(page))
	for _, key := range page {
		entry, err := s.load(key)
		if err != nil {
			s.logger.Warn(
				"skipping unreadable audit entry",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		entries = append(entries, *entry)
	}

	return entries, len(keys), nil
}

// listTenant walks keys newest first, loading each entry so the page and
// the total only count entries of tenantID.
func (s *KVStore) listTenant(
	keys []string,
	tenantID string,
	limit int,
	offset int,
) ([]Entry, int) {
	entries := make([]Entry, 0, limit)
	matched := 0
	for _, key := range keys {
		entry, err := s.load(key)
		if err != nil {
			s.logger.Warn(
				"skipping unreadable audit entry",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		if entry.TenantID != tenantID {
			continue
		}
		if matched >= offset && len(entries) < limit {
			entries = append(entries, *entry)
		}
		matched++
	}

	return entries, matched
}

// Ping reports whether the bucket answers a status request.
func (s *KVStore) Ping(
	_ context.Context,
) error {
	if _, err := s.kv.Status(); err != nil {
		return fmt.Errorf("audit bucket status: %w", err)
	}

	return nil
}

func (s *KVStore) load(
	key string,
) (*Entry, error) {
	kve, err := s.kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("get audit entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(kve.Value(), &entry); err != nil {
		return nil, fmt.Errorf("unmarshal audit entry %s: %w", key, err)
	}

	return &entry, nil
}

// pageOf returns keys[offset:offset+limit] clamped to the slice.
func pageOf(
	keys []string,
	limit int,
	offset int,
) []string {
	if offset >= len(keys) || limit <= 0 {
		return nil
	}

	return keys[offset:min(offset+limit, len(keys))]
}
