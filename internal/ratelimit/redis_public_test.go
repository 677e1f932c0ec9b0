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

package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/carehome-io/carehome/internal/ratelimit"
)

// fakeScripter emulates the fixed window script against an in-memory
// counter.
type fakeScripter struct {
	counts map[string]int64
	ttl    int64
	err    error
	reply  any
	keys   []string
	args   []any
}

func (f *fakeScripter) eval(
	ctx context.Context,
	keys []string,
	args ...any,
) *redis.Cmd {
	f.keys = keys
	f.args = args
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	if f.reply != nil {
		return redis.NewCmdResult(f.reply, nil)
	}
	f.counts[keys[0]]++

	return redis.NewCmdResult([]any{f.counts[keys[0]], f.ttl}, nil)
}

func (f *fakeScripter) Eval(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	return f.eval(ctx, keys, args...)
}

func (f *fakeScripter) EvalSha(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	return f.eval(ctx, keys, args...)
}

func (f *fakeScripter) EvalRO(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	return f.eval(ctx, keys, args...)
}

func (f *fakeScripter) EvalShaRO(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	return f.eval(ctx, keys, args...)
}

func (f *fakeScripter) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeScripter) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

type RedisLimiterPublicTestSuite struct {
	suite.Suite

	ctx     context.Context
	now     time.Time
	client  *fakeScripter
	limiter *ratelimit.RedisLimiter
}

func (s *RedisLimiterPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.client = &fakeScripter{counts: map[string]int64{}, ttl: 30000}
	s.limiter = ratelimit.NewRedisLimiter(s.client, func() time.Time { return s.now })
}

func (s *RedisLimiterPublicTestSuite) TestAllow() {
	tests := []struct {
		name      string
		limit     int
		hits      int
		wantAllow bool
		wantLeft  int
	}{
		{name: "first hit", limit: 5, hits: 1, wantAllow: true, wantLeft: 4},
		{name: "at the limit", limit: 2, hits: 2, wantAllow: true, wantLeft: 0},
		{name: "over the limit", limit: 2, hits: 3, wantAllow: false, wantLeft: 0},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			var d ratelimit.Decision
			for range tt.hits {
				var err error
				d, err = s.limiter.Allow(s.ctx, "login|10.0.0.1", tt.limit, time.Minute)
				s.Require().NoError(err)
			}

			s.Equal(tt.wantAllow, d.Allowed)
			s.Equal(tt.wantLeft, d.Remaining)
			s.Equal(s.now.Add(30*time.Second), d.ResetAt)
			s.Equal([]string{"carehome:ratelimit:login|10.0.0.1"}, s.client.keys)
			s.Equal([]any{int64(60000)}, s.client.args)
		})
	}
}

func (s *RedisLimiterPublicTestSuite) TestAllowDisabled() {
	d, err := s.limiter.Allow(s.ctx, "k", 0, time.Minute)

	s.NoError(err)
	s.True(d.Allowed)
	s.Nil(s.client.keys)
}

func (s *RedisLimiterPublicTestSuite) TestAllowErrors() {
	tests := []struct {
		name     string
		err      error
		reply    any
		contains string
	}{
		{
			name:     "redis down",
			err:      errors.New("dial tcp: connection refused"),
			contains: "rate limit script",
		},
		{
			name:     "unexpected reply",
			reply:    "OK",
			contains: "unexpected rate limit response",
		},
		{
			name:     "non integer counter",
			reply:    []any{"1", int64(10)},
			contains: "invalid rate limit counter",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.client.err = tt.err
			s.client.reply = tt.reply

			_, err := s.limiter.Allow(s.ctx, "k", 5, time.Minute)

			s.Error(err)
			s.Contains(err.Error(), tt.contains)
		})
	}
}

func TestRedisLimiterPublicTestSuite(t *testing.T) {
	suite.Run(t, new(RedisLimiterPublicTestSuite))
}
