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

// Package config defines the carehome configuration file and its validation.
package config

import (
	"fmt"
	"time"

	masker "github.com/ggwhite/go-masker/v2"

	"github.com/carehome-io/carehome/internal/validation"
)

// Defaults applied when the corresponding duration is empty.
const (
	DefaultAccessTTL       = 7 * 24 * time.Hour
	DefaultRefreshTTL      = 30 * 24 * time.Hour
	DefaultLockoutDuration = 2 * time.Hour
	DefaultRateLimitWindow = 15 * time.Minute
)

// Validate checks the required fields and value ranges of the configuration.
func Validate(
	cfg *Config,
) error {
	if msg, ok := validation.Struct(cfg); !ok {
		return fmt.Errorf("invalid configuration: %s", msg)
	}

	durations := map[string]string{
		"api.server.security.access_ttl":       cfg.API.Security.AccessTTL,
		"api.server.security.refresh_ttl":      cfg.API.Security.RefreshTTL,
		"api.server.security.lockout_duration": cfg.API.Security.LockoutDuration,
		"database.conn_max_lifetime":           cfg.Database.ConnMaxLifetime,
		"rate_limit.window":                    cfg.RateLimit.Window,
		"audit.nats.ttl":                       cfg.Audit.NATS.TTL,
	}
	for key, value := range durations {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", key, err)
		}
	}

	return nil
}

// ParseDuration parses value, returning fallback when value is empty or invalid.
func ParseDuration(
	value string,
	fallback time.Duration,
) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

// Masked returns a copy of cfg with every `mask` tagged secret obscured.
func Masked(
	cfg Config,
) (any, error) {
	m := masker.NewMaskerMarshaler()

	masked, err := m.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("masking config: %w", err)
	}

	return masked, nil
}
