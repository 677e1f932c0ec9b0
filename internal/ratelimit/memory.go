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

package ratelimit

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrCapacity is returned when the memory limiter tracks too many keys.
var ErrCapacity = errors.New("rate limiter capacity exceeded")

const (
	defaultMaxKeys = 10000
	defaultIdleTTL = 5 * time.Minute
)

// MemoryOptions configures a MemoryLimiter.
type MemoryOptions struct {
	Now     func() time.Time
	MaxKeys int
	IdleTTL time.Duration
}

type bucket struct {
	lim    *rate.Limiter
	limit  int
	window time.Duration
	seen   time.Time
}

// MemoryLimiter is a per-key token bucket held in process. A key refills
// limit tokens evenly over window and may burst up to limit.
type MemoryLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	buckets map[string]*bucket
	maxKeys int
	idleTTL time.Duration
}

// NewMemoryLimiter creates a MemoryLimiter.
func NewMemoryLimiter(
	opts MemoryOptions,
) *MemoryLimiter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxKeys <= 0 {
		opts.MaxKeys = defaultMaxKeys
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = defaultIdleTTL
	}

	return &MemoryLimiter{
		now:     opts.Now,
		buckets: make(map[string]*bucket),
		maxKeys: opts.MaxKeys,
		idleTTL: opts.IdleTTL,
	}
}

// Allow takes one token from key's bucket.
func (m *MemoryLimiter) Allow(
	_ context.Context,
	key string,
	limit int,
	window time.Duration,
) (Decision, error) {
	if limit <= 0 {
		return unlimited(limit), nil
	}
	if window <= 0 {
		window = time.Second
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok || b.limit != limit || b.window != window {
		if !ok && len(m.buckets) >= m.maxKeys {
			m.evict(now)
			if len(m.buckets) >= m.maxKeys {
				return Decision{}, ErrCapacity
			}
		}
		// rate.Every(0) is an infinite rate.
		every := max(window/time.Duration(limit), time.Nanosecond)
		b = &bucket{
			lim:    rate.NewLimiter(rate.Every(every), limit),
			limit:  limit,
			window: window,
		}
		m.buckets[key] = b
	}
	b.seen = now

	allowed := b.lim.AllowN(now, 1)
	tokens := b.lim.TokensAt(now)

	remaining := int(math.Floor(tokens))
	if remaining < 0 {
		remaining = 0
	}

	// Time until the bucket is full again.
	missing := float64(limit) - tokens
	resetAt := now
	if missing > 0 {
		resetAt = now.Add(time.Duration(missing * float64(window) / float64(limit)))
	}

	return Decision{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// Len returns the number of tracked keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.buckets)
}

// evict drops buckets idle for longer than idleTTL. Caller holds mu.
func (m *MemoryLimiter) evict(
	now time.Time,
) {
	for key, b := range m.buckets {
		if now.Sub(b.seen) > m.idleTTL {
			delete(m.buckets, key)
		}
	}
}
